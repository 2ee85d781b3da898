// Package build holds version information set at link time, e.g.
// go build -ldflags "-X github.com/tess-atlas/slurm-utils/internal/slurmjobs/build.GitCommit=$(git rev-parse HEAD)"
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN"
	GitCommit      = "UNKNOWN"
	BuildTime      = "UNKNOWN"
	GoVersion      = runtime.Version()
)
