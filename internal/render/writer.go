package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tess-atlas/slurm-utils/internal/common/slices"
	"github.com/tess-atlas/slurm-utils/internal/jobs"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

const (
	SubmitDirName    = "submit"
	SubmitScriptName = "submit.sh"
)

// ScriptWriter renders job descriptors and writes them below SubmitDirectory.
type ScriptWriter struct {
	Engine          *Engine
	SubmitDirectory string
	ModuleLoads     string
	LoadEnv         string
	Account         string
}

// LogDirectory returns the directory the scheduler writes the logs of role's jobs to.
func LogDirectory(outputDirectory string, role jobs.Role) string {
	return filepath.Join(outputDirectory, "log_"+role.ShortName())
}

// JobScriptName returns the file name of the script for a job.
func JobScriptName(role jobs.Role, batchIndex int) string {
	return fmt.Sprintf("slurm_%s_%d_job.sh", role.ShortName(), batchIndex)
}

// WriteJob renders d and returns the absolute path of the written script.
func (w *ScriptWriter) WriteJob(d *jobs.JobDescriptor) (string, error) {
	outdir, err := filepath.Abs(d.GetOutputDirectory())
	if err != nil {
		return "", errors.WithStack(err)
	}
	logDir := LogDirectory(outdir, d.GetRole())
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "error creating log directory %s", logDir)
	}
	resources := d.GetResources()
	name := d.GetRole().ShortName()

	contents, err := w.Engine.Render(JobTemplate, JobScript{
		JobName:         "toi_" + name,
		LogFile:         filepath.Join(logDir, name+"_%A_%a.log"),
		CPUCount:        resources.CPUCount,
		WallTime:        resources.WallTime,
		Memory:          resources.Memory,
		ScratchMemory:   resources.ScratchMemory,
		Email:           d.GetEmail(),
		Account:         w.Account,
		ArrayEnd:        d.GetArrayLen() - 1,
		ArrayArgs:       slices.Map(d.GetArrayArguments(), toi.TargetID.String),
		ModuleLoads:     w.ModuleLoads,
		LoadEnv:         w.LoadEnv,
		OutputDirectory: outdir,
		Command:         d.GetCommand(),
	})
	if err != nil {
		return "", err
	}
	return w.write(JobScriptName(d.GetRole(), d.GetBatchIndex()), contents)
}

// WriteSubmit renders s and returns the absolute path of the written submit script.
func (w *ScriptWriter) WriteSubmit(s SubmitScript) (string, error) {
	contents, err := w.Engine.Render(SubmitTemplate, s)
	if err != nil {
		return "", err
	}
	return w.write(SubmitScriptName, contents)
}

func (w *ScriptWriter) write(name string, contents []byte) (string, error) {
	dir, err := filepath.Abs(w.SubmitDirectory)
	if err != nil {
		return "", errors.WithStack(err)
	}
	path := filepath.Join(dir, name)
	if err := writeFile(path, contents, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile replaces path with data so that readers never see a partially written script.
func writeFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "error creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".slurm-tmp-*")
	if err != nil {
		return errors.Wrapf(err, "error creating temp file for %s", path)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "error writing temp file for %s", path)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrapf(err, "error setting permissions on temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrapf(err, "error closing temp file for %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return errors.Wrapf(err, "error renaming temp file to %s", path)
	}
	return nil
}
