package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tess-atlas/slurm-utils/internal/slurmjobs"
)

func versionCmd(app *slurmjobs.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			return app.Version()
		},
	}
	return cmd
}
