//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

const (
	binaryName = "make-slurm-jobs"
	buildPkg   = "github.com/tess-atlas/slurm-utils/internal/slurmjobs/build"
	demoDir    = "demo_catalog"
)

// Check dependent tools are present and the correct version.
func CheckDeps() error {
	checks := []struct {
		name  string
		check func() error
	}{
		{"go", goCheck},
		{"golangci-lint", golangciLintCheck},
	}
	failures := false
	for _, check := range checks {
		fmt.Printf("Checking %s... ", check.name)
		if err := check.check(); err != nil {
			fmt.Printf("FAILED\nReason: %v\n", err)
			failures = true
		} else {
			fmt.Println("PASSED")
		}
	}
	if failures {
		return errors.New("check(s) failed.")
	}
	return nil
}

// Build make-slurm-jobs into ./bin, stamping it with the current commit.
func Build() error {
	mg.Deps(goCheck, makeLocalBin)

	commit, err := sh.Output("git", "rev-parse", "HEAD")
	if err != nil {
		commit = "UNKNOWN"
	}
	version := os.Getenv("RELEASE_VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := strings.Join([]string{
		fmt.Sprintf("-X %s.ReleaseVersion=%s", buildPkg, version),
		fmt.Sprintf("-X %s.GitCommit=%s", buildPkg, commit),
		fmt.Sprintf("-X %s.BuildTime=%s", buildPkg, time.Now().UTC().Format(time.RFC3339)),
	}, " ")

	return goRun("build", "-ldflags", ldflags, "-o", filepath.Join(LocalBin, binaryWithExt(binaryName)), "./cmd/"+binaryName)
}

// Demo writes the jobs for a single TOI into ./demo_catalog without submitting them.
func Demo() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(LocalBin, binaryWithExt(binaryName)),
		"generate", "--toi-number", "101", "--outdir", demoDir, "--log-level", "debug")
}

// Clean up after yourself
func Clean() {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "test_reports", demoDir} {
		os.RemoveAll(path)
	}
}
