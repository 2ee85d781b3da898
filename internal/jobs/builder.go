package jobs

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// ArrayArgPlaceholder expands to the TOI handled by the current array task.
	ArrayArgPlaceholder = "${ARRAY_ARGS[$SLURM_ARRAY_TASK_ID]}"
	// DefaultCommandBase runs the analysis of a single TOI.
	DefaultCommandBase = "srun run_toi"

	QuickRunFlag = "--quickrun"
	SetupFlag    = "--setup"
)

// Builder creates the job descriptors for each batch.
type Builder struct {
	Resources       RoleResourceTable
	CommandBase     string
	QuickRun        bool
	Email           string
	OutputDirectory string
}

// Command returns the command run by every analysis array task.
func (b Builder) Command() string {
	cmd := fmt.Sprintf("%s %s --outdir %s", b.CommandBase, ArrayArgPlaceholder, b.OutputDirectory)
	if b.QuickRun {
		cmd += " " + QuickRunFlag
	}
	return cmd
}

// Build returns the generation and analysis jobs for batch.
// If skipGeneration is set the generation job is nil.
func (b Builder) Build(batch Batch, skipGeneration bool) (generation *JobDescriptor, analysis *JobDescriptor, err error) {
	cmd := b.Command()
	if !skipGeneration {
		generation, err = b.build(RoleGeneration, batch, cmd+" "+SetupFlag)
		if err != nil {
			return nil, nil, err
		}
	}
	analysis, err = b.build(RoleAnalysis, batch, cmd)
	if err != nil {
		return nil, nil, err
	}
	return generation, analysis, nil
}

func (b Builder) build(role Role, batch Batch, cmd string) (*JobDescriptor, error) {
	resources, ok := b.Resources[role]
	if !ok {
		return nil, errors.Errorf("no resources configured for %s jobs", role)
	}
	return NewJobDescriptor(JobDescriptorParams{
		Role:            role,
		BatchIndex:      batch.Index,
		ArrayArguments:  batch.TargetIDs,
		Resources:       resources,
		Command:         cmd,
		Email:           b.Email,
		OutputDirectory: b.OutputDirectory,
	})
}
