package common

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/tess-atlas/slurm-utils/internal/common/logging"
)

// ConfigureCommandLineLogging sets up the standard logger for interactive use.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&logging.CommandLineFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

// ConfigureLogging sets up timestamped logging, used when output is captured by a scheduler.
func ConfigureLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)
}
