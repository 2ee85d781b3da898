package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tess-atlas/slurm-utils/internal/slurmjobs"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

func generateCmd(app *slurmjobs.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write array jobs for every TOI that has not been analysed yet.",
		Long: `Write array jobs for every TOI that has not been analysed yet.

TOIs are read from --toi-csv, or --toi-number for a single TOI. If neither is given
the list of TOIs with a lightcurve is downloaded from the ExoFOP catalog.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := slurmjobs.GenerateOptions{}
			var err error
			if opts.TOICSV, err = cmd.Flags().GetString("toi-csv"); err != nil {
				return err
			}
			if cmd.Flags().Changed("toi-number") {
				number, err := cmd.Flags().GetInt("toi-number")
				if err != nil {
					return err
				}
				id := toi.TargetID(number)
				opts.TOINumber = &id
			}
			if opts.Clean, err = cmd.Flags().GetBool("clean"); err != nil {
				return err
			}
			if opts.Submit, err = cmd.Flags().GetBool("submit"); err != nil {
				return err
			}
			if opts.SkipGeneration, err = cmd.Flags().GetBool("skip-gen"); err != nil {
				return err
			}
			if opts.QuickRun, err = cmd.Flags().GetBool("quickrun"); err != nil {
				return err
			}

			_, err = app.SetupJobs(cmd.Context(), opts)
			return err
		},
	}

	cmd.Flags().String("toi-csv", "", "csv of the toi numbers to analyse (column name: toi_numbers)")
	cmd.Flags().Int("toi-number", 0, "single toi number to analyse (cannot be passed in addition to --toi-csv)")
	cmd.Flags().Bool("clean", false, "run all, ignoring TOIs with completed analyses")
	cmd.Flags().Bool("submit", false, "submit jobs instead of just making the slurm files")
	cmd.Flags().Bool("skip-gen", false, "skip the data generation jobs")
	cmd.Flags().Bool("quickrun", false, "run a quick analysis, for testing")
	cmd.Flags().String("email", "", "email address for job notifications")
	cmd.Flags().String("module-loads", slurmjobs.DefaultModuleLoads, "string containing all module loads in one line (each module separated by a space)")
	cmd.Flags().String("partition", "", "partition to submit the jobs to")
	cmd.MarkFlagsMutuallyExclusive("toi-csv", "toi-number")
	bindFlags(v, cmd.Flags(), map[string]string{
		"email":        "email",
		"module-loads": "moduleLoads",
		"partition":    "partition",
	})

	return cmd
}
