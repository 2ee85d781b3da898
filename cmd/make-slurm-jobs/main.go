package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tess-atlas/slurm-utils/cmd/make-slurm-jobs/cmd"
	"github.com/tess-atlas/slurm-utils/internal/common"
	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
)

// Config is handled by cmd/params.go
func main() {
	common.ConfigureCommandLineLogging()

	// Cancelled on SIGINT/SIGTERM so that an interrupted download or submission stops.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.RootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(atlaserrors.ExitCodeFromError(err))
	}
}
