package slurmjobs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tess-atlas/slurm-utils/internal/common/metrics"
	"github.com/tess-atlas/slurm-utils/internal/history"
	"github.com/tess-atlas/slurm-utils/internal/jobs"
	"github.com/tess-atlas/slurm-utils/internal/manifest"
	"github.com/tess-atlas/slurm-utils/internal/render"
	"github.com/tess-atlas/slurm-utils/internal/submitter"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

// GenerateOptions are the per-run settings of SetupJobs.
type GenerateOptions struct {
	// CSV file with a toi_numbers column.
	TOICSV string
	// Single TOI to process.
	TOINumber *toi.TargetID
	// Process every requested TOI, even those with existing results.
	Clean bool
	// Submit the jobs instead of printing how to.
	Submit bool
	// Only write analysis jobs.
	SkipGeneration bool
	QuickRun       bool
}

// SetupJobs writes the job scripts for every TOI that still needs processing,
// followed by the script submitting them, and optionally submits it.
func (a *App) SetupJobs(ctx context.Context, opts GenerateOptions) (history.Run, error) {
	cfg := a.Params.Config
	outdir, err := filepath.Abs(cfg.OutputDirectory)
	if err != nil {
		return history.Run{}, errors.WithStack(err)
	}
	submitDir := filepath.Join(outdir, render.SubmitDirName)
	for _, dir := range []string{
		submitDir,
		render.LogDirectory(outdir, jobs.RoleGeneration),
		render.LogDirectory(outdir, jobs.RoleAnalysis),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return history.Run{}, errors.Wrapf(err, "error creating %s", dir)
		}
	}

	source := toi.Source{
		CSVPath:         opts.TOICSV,
		Number:          opts.TOINumber,
		CatalogURL:      cfg.Catalog.URL,
		OutputDirectory: outdir,
		HTTPClient:      a.Params.HTTPClient,
		Attempts:        cfg.Catalog.Attempts,
		Delay:           cfg.Catalog.Delay,
	}
	requested, err := source.Load(ctx, a.Logger)
	if err != nil {
		return history.Run{}, err
	}
	ids, err := toi.Resolve(requested, outdir, opts.Clean, a.Logger)
	if err != nil {
		return history.Run{}, err
	}
	batches := jobs.MakeBatches(ids, cfg.MaxArraySize)

	engine, err := render.NewEngine()
	if err != nil {
		return history.Run{}, err
	}
	writer := &render.ScriptWriter{
		Engine:          engine,
		SubmitDirectory: submitDir,
		ModuleLoads:     cfg.ModuleLoads,
		LoadEnv:         a.loadEnv(),
		Account:         cfg.Account,
	}
	builder := jobs.Builder{
		Resources:       jobs.DefaultRoleResources,
		CommandBase:     cfg.CommandBase,
		QuickRun:        opts.QuickRun,
		Email:           cfg.Email,
		OutputDirectory: outdir,
	}

	var m manifest.Manifest
	for _, batch := range batches {
		generation, analysis, err := builder.Build(batch, opts.SkipGeneration)
		if err != nil {
			return history.Run{}, err
		}
		generationPath := ""
		if generation != nil {
			if generationPath, err = writer.WriteJob(generation); err != nil {
				return history.Run{}, err
			}
		}
		analysisPath, err := writer.WriteJob(analysis)
		if err != nil {
			return history.Run{}, err
		}
		m.Add(generationPath, analysisPath)
	}

	assembler := manifest.Assembler{
		Writer:            writer,
		Partition:         cfg.Partition,
		ChainDependencies: cfg.ChainDependencies,
		Attempts:          cfg.Submission.Attempts,
		Delay:             cfg.Submission.Delay,
		Logger:            a.Logger,
	}
	submitPath, err := assembler.Assemble(m)
	if err != nil {
		return history.Run{}, err
	}

	run := history.NewRun(outdir)
	run.Requested = requested.Len()
	run.ToProcess = len(ids)
	run.Batches = len(batches)
	run.GenerationJobs = m.GenerationCount()
	run.AnalysisJobs = m.Len()
	run.SubmitScript = submitPath

	var submitErr error
	if opts.Submit {
		if submitErr = a.submitter().Submit(ctx, submitPath); submitErr == nil {
			run.Submitted = true
			fmt.Fprintln(a.Out, "All submitted!")
		}
	} else if err := (submitter.DryRun{Out: a.Out}).Submit(ctx, submitPath); err != nil {
		return run, errors.WithStack(err)
	}

	if err := a.record(ctx, cfg, run); err != nil {
		return run, err
	}
	if submitErr != nil {
		return run, errors.WithMessage(submitErr, "error submitting jobs")
	}
	return run, nil
}

// record stores run in the history database and the metrics textfile, when enabled.
func (a *App) record(ctx context.Context, cfg Config, run history.Run) error {
	if cfg.History.Enabled {
		store, cleanup, err := history.NewSQLiteStore(cfg.HistoryPath(), a.Logger)
		if err != nil {
			return err
		}
		defer cleanup()
		if err := store.Setup(ctx); err != nil {
			return err
		}
		if err := store.Record(ctx, run); err != nil {
			return err
		}
	}

	if cfg.Metrics.Enabled {
		m := metrics.NewRunMetrics()
		m.SetTargets(run.Requested, run.ToProcess)
		m.SetJobs(run.Batches, run.GenerationJobs, run.AnalysisJobs)
		m.SetSubmitted(run.Submitted)
		m.MarkRun()
		if err := m.WriteTextfile(filepath.Join(run.OutputDirectory, render.SubmitDirName, metrics.TextfileName)); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) submitter() submitter.Submitter {
	if a.Params.Submitter != nil {
		return a.Params.Submitter
	}
	cfg := a.Params.Config.Submission
	return submitter.JobSubmitter{
		Shell:    cfg.Shell,
		Attempts: cfg.Attempts,
		Delay:    cfg.Delay,
		Out:      a.Out,
		Logger:   a.Logger,
	}
}

// loadEnv returns the command activating the python environment the tool was installed in.
func (a *App) loadEnv() string {
	if a.Params.LoadEnv != "" {
		return a.Params.LoadEnv
	}
	python, err := exec.LookPath("python")
	if err != nil {
		a.Logger.Debugf("python not found on PATH, jobs will not activate an environment")
		return ""
	}
	return fmt.Sprintf("source %s", filepath.Join(filepath.Dir(python), "activate"))
}
