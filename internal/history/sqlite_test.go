package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStore(t *testing.T, action func(ctx context.Context, store *SQLiteStore)) {
	logger, _ := test.NewNullLogger()
	store, cleanup, err := NewSQLiteStore(filepath.Join(t.TempDir(), "submit", DefaultFileName), logger)
	require.NoError(t, err)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Setup(ctx))
	action(ctx, store)
}

func TestNewRun(t *testing.T) {
	run := NewRun("/out")
	_, err := uuid.Parse(run.ID)
	assert.NoError(t, err)
	assert.Equal(t, "/out", run.OutputDirectory)
	assert.WithinDuration(t, time.Now(), run.Timestamp, time.Minute)
	assert.NotEqual(t, run.ID, NewRun("/out").ID)
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	withStore(t, func(ctx context.Context, store *SQLiteStore) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			run := NewRun("/out")
			run.Timestamp = base.Add(time.Duration(i) * time.Hour)
			run.Requested = 10 + i
			run.ToProcess = i
			run.Batches = 1
			run.AnalysisJobs = 1
			run.SubmitScript = "/out/submit/submit.sh"
			run.Submitted = i%2 == 0
			require.NoError(t, store.Record(ctx, run))
		}

		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, 12, runs[0].Requested)
		assert.Equal(t, 10, runs[2].Requested)
		assert.True(t, runs[0].Submitted)
		assert.False(t, runs[1].Submitted)
		assert.Equal(t, base.Add(2*time.Hour), runs[0].Timestamp)

		limited, err := store.List(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, runs[:2], limited)
	})
}

func TestSQLiteStore_RecordReplacesSameID(t *testing.T) {
	withStore(t, func(ctx context.Context, store *SQLiteStore) {
		run := NewRun("/out")
		require.NoError(t, store.Record(ctx, run))
		run.Submitted = true
		require.NoError(t, store.Record(ctx, run))

		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.True(t, runs[0].Submitted)
	})
}

func TestSQLiteStore_EmptyList(t *testing.T) {
	withStore(t, func(ctx context.Context, store *SQLiteStore) {
		runs, err := store.List(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, runs)
		assert.NotNil(t, runs)
	})
}

func TestSQLiteStore_SetupIsIdempotent(t *testing.T) {
	withStore(t, func(ctx context.Context, store *SQLiteStore) {
		require.NoError(t, store.Record(ctx, NewRun("/out")))
		require.NoError(t, store.Setup(ctx))

		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})
}
