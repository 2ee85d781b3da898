package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tess-atlas/slurm-utils/internal/slurmjobs"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-slurm-jobs",
		Short: "make-slurm-jobs writes SLURM array jobs analysing TESS Objects of Interest.",
		Long: `make-slurm-jobs writes SLURM array jobs analysing TESS Objects of Interest (TOIs).

TOIs that already have results in the output directory are skipped. The remaining
TOIs are split into array jobs, and a submit.sh script submitting every job is
written to <outdir>/submit.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
outdir: /fred/oz200/tess_atlas_catalog
email: someone@example.com
partition: sstar
moduleLoads: git/2.18.0 gcc/9.2.0 openmpi/4.0.2 python/3.8.5

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.make-slurm-jobs.yaml is used.
Every key can also be set with a SLURMJOBS_ prefixed environment variable, e.g. SLURMJOBS_PARTITION.`,
		SilenceUsage: true,
	}

	v := viper.New()
	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.make-slurm-jobs.yaml)")
	cmd.PersistentFlags().Bool("timestamps", false, "prefix log messages with timestamps")
	cmd.PersistentFlags().String("outdir", slurmjobs.DefaultOutputDirectory, "outdir for jobs")
	cmd.PersistentFlags().String("log-level", "info", "log level, e.g. debug")
	bindFlags(v, cmd.PersistentFlags(), map[string]string{
		"outdir":    "outdir",
		"log-level": "logLevel",
	})

	cmd.AddCommand(
		generateCmd(slurmjobs.New(), v),
		historyCmd(slurmjobs.New(), v),
		versionCmd(slurmjobs.New()),
	)

	return cmd
}
