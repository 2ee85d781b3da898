package slurmjobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
	"github.com/tess-atlas/slurm-utils/internal/history"
)

func TestHistory(t *testing.T) {
	outdir := t.TempDir()
	app, out, _ := newTestApp(t, testConfig(outdir))

	first, err := app.SetupJobs(context.Background(), GenerateOptions{TOICSV: writeTOICSV(t, toiRange(1, 4))})
	require.NoError(t, err)
	out.Reset()

	require.NoError(t, app.History(context.Background(), 0))

	var runs []history.Run
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Requested)
	assert.Equal(t, first.SubmitScript, runs[0].SubmitScript)
	assert.Contains(t, out.String(), "toProcess: 3\n")
}

func TestHistory_Limit(t *testing.T) {
	outdir := t.TempDir()
	app, out, _ := newTestApp(t, testConfig(outdir))
	for i := 0; i < 3; i++ {
		_, err := app.SetupJobs(context.Background(), GenerateOptions{TOICSV: writeTOICSV(t, toiRange(1, 2))})
		require.NoError(t, err)
	}
	out.Reset()

	require.NoError(t, app.History(context.Background(), 2))

	var runs []history.Run
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &runs))
	assert.Len(t, runs, 2)
}

func TestHistory_NoDatabase(t *testing.T) {
	app, _, _ := newTestApp(t, testConfig(t.TempDir()))

	err := app.History(context.Background(), 0)
	var notFound *atlaserrors.ErrNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, atlaserrors.ExitNotFound, atlaserrors.ExitCodeFromError(err))
}
