package slurmjobs

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
	"github.com/tess-atlas/slurm-utils/internal/history"
)

// History prints the most recent runs recorded in the history database as YAML.
// A limit below 1 prints every run.
func (a *App) History(ctx context.Context, limit int) error {
	path := a.Params.Config.HistoryPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.WithStack(&atlaserrors.ErrNotFound{
			Type:    "history database",
			Value:   path,
			Message: "no runs have been recorded yet",
		})
	}

	store, cleanup, err := history.NewSQLiteStore(path, a.Logger)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := store.Setup(ctx); err != nil {
		return err
	}
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(a.Out, "No runs recorded in %s\n", path)
		return nil
	}

	out, err := yaml.Marshal(runs)
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = a.Out.Write(out)
	return err
}
