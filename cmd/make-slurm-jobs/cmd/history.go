package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tess-atlas/slurm-utils/internal/slurmjobs"
)

func historyCmd(app *slurmjobs.App, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print previous runs recorded in the output directory.",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			return app.History(cmd.Context(), limit)
		},
	}
	cmd.Flags().Int("limit", 10, "maximum number of runs to print, 0 prints all runs")
	return cmd
}
