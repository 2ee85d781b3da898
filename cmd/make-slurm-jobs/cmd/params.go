package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tess-atlas/slurm-utils/internal/common"
	"github.com/tess-atlas/slurm-utils/internal/slurmjobs"
)

// bindFlags binds each flag to the config key it overrides.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keysByFlag map[string]string) {
	for flag, key := range keysByFlag {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initParams(cmd *cobra.Command, app *slurmjobs.App, v *viper.Viper) error {
	timestamps, err := cmd.Flags().GetBool("timestamps")
	if err != nil {
		return err
	}
	if timestamps {
		common.ConfigureLogging()
	}

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	config, err := slurmjobs.LoadConfig(v, cfgFile)
	if err != nil {
		return errors.Wrap(err, "error loading config")
	}
	log.SetLevel(config.LogLevel)

	app.Params.Config = config
	app.Out = cmd.OutOrStdout()
	return nil
}
