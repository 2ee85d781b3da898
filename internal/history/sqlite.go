// Package history records every generated run in a sqlite database.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DefaultFileName is the name of the database inside the submit directory.
const DefaultFileName = "history.db"

// Run describes one invocation of the job generator.
type Run struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	OutputDirectory string    `json:"outputDirectory"`
	Requested       int       `json:"requested"`
	ToProcess       int       `json:"toProcess"`
	Batches         int       `json:"batches"`
	GenerationJobs  int       `json:"generationJobs"`
	AnalysisJobs    int       `json:"analysisJobs"`
	SubmitScript    string    `json:"submitScript"`
	Submitted       bool      `json:"submitted"`
}

// NewRun returns a run with a fresh id, stamped with the current time.
func NewRun(outputDirectory string) Run {
	return Run{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UTC(),
		OutputDirectory: outputDirectory,
	}
}

// SQLiteStore persists runs to a sqlite database.
type SQLiteStore struct {
	db   *sql.DB
	lock sync.RWMutex
}

// NewSQLiteStore opens the database at path, creating its directory if needed.
// The returned function closes the database.
func NewSQLiteStore(path string, logger log.FieldLogger) (*SQLiteStore, func(), error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() {}, errors.Wrapf(err, "could not make directory at %s for sqlite db", dir)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, func() {}, errors.Wrapf(err, "error opening sqlite db from %s", path)
	}

	return &SQLiteStore{db: db}, func() {
		if err := db.Close(); err != nil {
			logger.Warnf("error closing database: %v", err)
		}
	}, nil
}

// Setup creates the runs table if it does not exist yet.
func (s *SQLiteStore) Setup(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return errors.WithStack(err)
	}
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			Id TEXT,
			Timestamp INT,
			OutputDirectory TEXT,
			Requested INT,
			ToProcess INT,
			Batches INT,
			GenerationJobs INT,
			AnalysisJobs INT,
			SubmitScript TEXT,
			Submitted BOOLEAN,
			PRIMARY KEY(Id))`)
	return errors.WithStack(err)
}

// Record inserts run, replacing any earlier run with the same id.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
			(Id, Timestamp, OutputDirectory, Requested, ToProcess, Batches, GenerationJobs, AnalysisJobs, SubmitScript, Submitted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Timestamp.UnixNano(), run.OutputDirectory, run.Requested, run.ToProcess,
		run.Batches, run.GenerationJobs, run.AnalysisJobs, run.SubmitScript, run.Submitted)
	if err != nil {
		return errors.Wrapf(err, "error recording run %s", run.ID)
	}
	return nil
}

// List returns up to limit runs, most recent first. A limit below 1 returns every run.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if limit < 1 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT Id, Timestamp, OutputDirectory, Requested, ToProcess, Batches, GenerationJobs, AnalysisJobs, SubmitScript, Submitted
			FROM runs ORDER BY Timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var timestamp int64
		if err := rows.Scan(&run.ID, &timestamp, &run.OutputDirectory, &run.Requested, &run.ToProcess,
			&run.Batches, &run.GenerationJobs, &run.AnalysisJobs, &run.SubmitScript, &run.Submitted); err != nil {
			return nil, errors.WithStack(err)
		}
		run.Timestamp = time.Unix(0, timestamp).UTC()
		runs = append(runs, run)
	}
	return runs, errors.WithStack(rows.Err())
}
