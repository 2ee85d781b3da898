// Package slurmjobs implements the make-slurm-jobs commands.
package slurmjobs

import (
	"io"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/tess-atlas/slurm-utils/internal/submitter"
)

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
	// Logger receives progress reports. Defaults to the standard logrus logger.
	Logger log.FieldLogger
}

// Params holds all user-customizable parameters.
type Params struct {
	Config Config
	// Used to download the TOI catalog.
	HTTPClient *http.Client
	// Overrides the scheduler submission, e.g. in tests.
	Submitter submitter.Submitter
	// Command activating the python environment in each job.
	// Detected from the python executable on PATH if empty.
	LoadEnv string
}

// New instantiates an App with default parameters, writing to standard out.
func New() *App {
	return &App{
		Params: &Params{HTTPClient: http.DefaultClient},
		Out:    os.Stdout,
		Logger: log.StandardLogger(),
	}
}
