// Package submitter hands the generated submission script to the batch scheduler.
package submitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultShell = "bash"

// Submitter submits the script at scriptPath.
type Submitter interface {
	Submit(ctx context.Context, scriptPath string) error
}

// JobSubmitter runs the submission script with a shell.
// Only failures to start the shell are retried. Once the script has run, some of its jobs may be
// queued, so a non-zero exit is returned as is; the script retries its own sbatch calls.
type JobSubmitter struct {
	Shell    string
	Attempts uint
	Delay    time.Duration
	// Receives the output of the script.
	Out    io.Writer
	Logger log.FieldLogger
}

func (s JobSubmitter) Submit(ctx context.Context, scriptPath string) error {
	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}
	return retry.Do(
		func() error {
			return s.run(ctx, scriptPath)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(notStarted),
		retry.OnRetry(func(n uint, err error) {
			s.logger().WithError(err).Warnf("Submission attempt %d of %d failed", n+1, attempts)
		}),
	)
}

func (s JobSubmitter) run(ctx context.Context, scriptPath string) error {
	shell := s.Shell
	if shell == "" {
		shell = DefaultShell
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, scriptPath)
	cmd.Stdout = s.out()
	cmd.Stderr = io.MultiWriter(s.out(), &stderr)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "error running %s %s: %s", shell, scriptPath, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// notStarted reports whether err happened before the script could run.
func notStarted(err error) bool {
	var exitErr *exec.ExitError
	return !errors.As(err, &exitErr)
}

func (s JobSubmitter) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s JobSubmitter) logger() log.FieldLogger {
	if s.Logger == nil {
		return log.StandardLogger()
	}
	return s.Logger
}

// DryRun tells the user how to submit the script instead of submitting it.
type DryRun struct {
	Out io.Writer
}

func (d DryRun) Submit(_ context.Context, scriptPath string) error {
	_, err := fmt.Fprintf(d.Out, "To run job:\n>>> bash %s\n", scriptPath)
	return err
}
