package slurmjobs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/tess-atlas/slurm-utils/internal/jobs"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

type fakeSubmitter struct {
	submitted []string
	err       error
}

func (s *fakeSubmitter) Submit(_ context.Context, scriptPath string) error {
	s.submitted = append(s.submitted, scriptPath)
	return s.err
}

func testConfig(outdir string) Config {
	return Config{
		OutputDirectory: outdir,
		ModuleLoads:     DefaultModuleLoads,
		CommandBase:     jobs.DefaultCommandBase,
		MaxArraySize:    jobs.MaxArraySize,
		LogLevel:        logrus.InfoLevel,
		Submission:      SubmissionConfig{Attempts: 1, Shell: "sh"},
		Catalog:         CatalogConfig{URL: toi.DefaultCatalogURL, Attempts: 1, Delay: time.Millisecond},
		History:         HistoryConfig{Enabled: true},
	}
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	out := new(bytes.Buffer)
	app := &App{
		Params: &Params{
			Config:  cfg,
			LoadEnv: "source /opt/venv/bin/activate",
		},
		Out:    out,
		Logger: logger,
	}
	return app, out, hook
}

func writeTOICSV(t *testing.T, ids []toi.TargetID) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tois.csv")
	require.NoError(t, toi.WriteCSV(path, ids))
	return path
}

func toiRange(from, to int) []toi.TargetID {
	ids := make([]toi.TargetID, 0, to-from)
	for i := from; i < to; i++ {
		ids = append(ids, toi.TargetID(i))
	}
	return ids
}

func generateResultFiles(t *testing.T, outdir string, ids ...toi.TargetID) {
	t.Helper()
	for _, id := range ids {
		dir := filepath.Join(outdir, fmt.Sprintf("toi_%d_files", id))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("toi_%d.netcdf", id)), nil, 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(contents)
}
