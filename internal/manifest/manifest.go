// Package manifest assembles the per-batch job scripts into a single submission script.
package manifest

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tess-atlas/slurm-utils/internal/render"
)

// Manifest lists the job scripts of a run, indexed by batch.
// An empty GenerationPaths entry marks a batch whose generation job was skipped.
type Manifest struct {
	GenerationPaths []string
	AnalysisPaths   []string
}

// Add appends the scripts of the next batch. generationPath may be empty.
func (m *Manifest) Add(generationPath, analysisPath string) {
	m.GenerationPaths = append(m.GenerationPaths, generationPath)
	m.AnalysisPaths = append(m.AnalysisPaths, analysisPath)
}

// Len returns the number of batches.
func (m Manifest) Len() int {
	return len(m.AnalysisPaths)
}

// GenerationCount returns the number of batches that have a generation job.
func (m Manifest) GenerationCount() int {
	n := 0
	for _, p := range m.GenerationPaths {
		if p != "" {
			n++
		}
	}
	return n
}

type submitScriptWriter interface {
	WriteSubmit(render.SubmitScript) (string, error)
}

// Assembler writes the submission script for a manifest.
type Assembler struct {
	Writer    submitScriptWriter
	Partition string
	// ChainDependencies makes each analysis job wait for the generation job of its batch.
	ChainDependencies bool
	// Attempts and Delay control how often a failed sbatch call is retried by the script.
	Attempts uint
	Delay    time.Duration
	Logger   log.FieldLogger
}

// Assemble writes the submission script and returns its absolute path.
// Every generation job is submitted before any analysis job.
func (a *Assembler) Assemble(m Manifest) (string, error) {
	if len(m.GenerationPaths) != len(m.AnalysisPaths) {
		return "", errors.Errorf("manifest has %d generation entries but %d analysis entries", len(m.GenerationPaths), len(m.AnalysisPaths))
	}

	attempts := a.Attempts
	if attempts < 1 {
		attempts = 1
	}
	script := render.SubmitScript{
		Partition:    a.Partition,
		Attempts:     attempts,
		DelaySeconds: int(math.Ceil(a.Delay.Seconds())),
		Generation:   make([]render.SubmitEntry, 0, m.GenerationCount()),
		Analysis:     make([]render.SubmitEntry, 0, m.Len()),
	}
	for i, path := range m.GenerationPaths {
		if path == "" {
			continue
		}
		entry := render.SubmitEntry{Script: path}
		if a.ChainDependencies {
			entry.Var = generationVar(i)
		}
		script.Generation = append(script.Generation, entry)
	}
	for i, path := range m.AnalysisPaths {
		entry := render.SubmitEntry{Script: path}
		if a.ChainDependencies && m.GenerationPaths[i] != "" {
			entry.After = generationVar(i)
		}
		script.Analysis = append(script.Analysis, entry)
	}

	path, err := a.Writer.WriteSubmit(script)
	if err != nil {
		return "", err
	}
	a.logger().WithField("path", path).Debugf(
		"Wrote submission script for %d generation and %d analysis jobs",
		len(script.Generation), len(script.Analysis))
	return path, nil
}

func (a *Assembler) logger() log.FieldLogger {
	if a.Logger == nil {
		return log.StandardLogger()
	}
	return a.Logger
}

func generationVar(batchIndex int) string {
	return fmt.Sprintf("GEN_%d", batchIndex)
}
