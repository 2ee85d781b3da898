package slurmjobs

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/tess-atlas/slurm-utils/internal/common/config"
	"github.com/tess-atlas/slurm-utils/internal/history"
	"github.com/tess-atlas/slurm-utils/internal/jobs"
	"github.com/tess-atlas/slurm-utils/internal/render"
	"github.com/tess-atlas/slurm-utils/internal/submitter"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

const (
	// ConfigName is looked up in the home directory when no config file is given.
	ConfigName = ".make-slurm-jobs"
	EnvPrefix  = "SLURMJOBS"

	DefaultOutputDirectory = "tess_atlas_catalog"
	DefaultModuleLoads     = "git/2.18.0 gcc/9.2.0 openmpi/4.0.2 python/3.8.5"
)

type Config struct {
	OutputDirectory string `mapstructure:"outdir" validate:"required"`
	// Space separated list of environment modules loaded by every job.
	ModuleLoads       string           `mapstructure:"moduleLoads"`
	Email             string           `mapstructure:"email" validate:"omitempty,email"`
	Partition         string           `mapstructure:"partition"`
	Account           string           `mapstructure:"account"`
	CommandBase       string           `mapstructure:"commandBase" validate:"required"`
	MaxArraySize      int              `mapstructure:"maxArraySize" validate:"gte=1,lte=2048"`
	ChainDependencies bool             `mapstructure:"chainDependencies"`
	LogLevel          log.Level        `mapstructure:"logLevel"`
	Submission        SubmissionConfig `mapstructure:"submission"`
	Catalog           CatalogConfig    `mapstructure:"catalog"`
	History           HistoryConfig    `mapstructure:"history"`
	Metrics           MetricsConfig    `mapstructure:"metrics"`
}

type SubmissionConfig struct {
	Attempts uint          `mapstructure:"attempts" validate:"gte=1"`
	Delay    time.Duration `mapstructure:"delay"`
	Shell    string        `mapstructure:"shell" validate:"required"`
}

type CatalogConfig struct {
	URL      string        `mapstructure:"url" validate:"required,url"`
	Attempts uint          `mapstructure:"attempts" validate:"gte=1"`
	Delay    time.Duration `mapstructure:"delay"`
}

type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Defaults to history.db in the submit directory.
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// HistoryPath returns the location of the run history database.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.OutputDirectory, render.SubmitDirName, history.DefaultFileName)
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("outdir", DefaultOutputDirectory)
	v.SetDefault("moduleLoads", DefaultModuleLoads)
	v.SetDefault("email", "")
	v.SetDefault("partition", "")
	v.SetDefault("account", "")
	v.SetDefault("commandBase", jobs.DefaultCommandBase)
	v.SetDefault("maxArraySize", jobs.MaxArraySize)
	v.SetDefault("chainDependencies", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("submission.attempts", 1)
	v.SetDefault("submission.delay", "5s")
	v.SetDefault("submission.shell", submitter.DefaultShell)
	v.SetDefault("catalog.url", toi.DefaultCatalogURL)
	v.SetDefault("catalog.attempts", 3)
	v.SetDefault("catalog.delay", "2s")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
	v.SetDefault("metrics.enabled", false)
}

// LoadConfig reads the config file (cfgFile, or ~/.make-slurm-jobs.yaml if empty) and
// SLURMJOBS_* environment variables into v, then decodes and validates the result.
// Flags bound to v beforehand take precedence over both.
func LoadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return Config{}, errors.Wrap(err, "error getting user home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(ConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// Only returned when looking for the default file, which users don't have to create.
		default:
			return Config{}, errors.Wrapf(err, "error reading config file %s", v.ConfigFileUsed())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, config.CustomHooks...); err != nil {
		return Config{}, errors.Wrap(err, "error decoding config")
	}
	if err := config.Validate(cfg); err != nil {
		config.LogValidationErrors(err)
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
