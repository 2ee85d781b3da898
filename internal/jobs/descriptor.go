package jobs

import (
	"regexp"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

var wallTimeRegex = regexp.MustCompile(`^(\d+-)?\d+(:\d{2}){0,2}$`)

// JobDescriptor is everything needed to render one array job script.
// It is immutable; use NewJobDescriptor to create one.
type JobDescriptor struct {
	role            Role
	batchIndex      int
	arrayArguments  []toi.TargetID
	resources       ResourceSpec
	command         string
	email           string
	outputDirectory string
}

// JobDescriptorParams are the fields of a JobDescriptor.
type JobDescriptorParams struct {
	Role       Role
	BatchIndex int
	// One TOI per array index.
	ArrayArguments []toi.TargetID
	Resources      ResourceSpec
	// Command run by each array task; refers to its TOI through ArrayArgPlaceholder.
	Command string
	// Optional address for scheduler notifications.
	Email           string
	OutputDirectory string
}

// NewJobDescriptor validates params and returns the corresponding JobDescriptor.
// All problems found are returned together as a *multierror.Error.
func NewJobDescriptor(params JobDescriptorParams) (*JobDescriptor, error) {
	var result *multierror.Error
	if !params.Role.Valid() {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "role", Value: params.Role, Message: "unknown role"})
	}
	if params.BatchIndex < 0 {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "batchIndex", Value: params.BatchIndex, Message: "must not be negative"})
	}
	if len(params.ArrayArguments) == 0 {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "arrayArguments", Value: params.ArrayArguments, Message: "at least one TOI is required"})
	}
	if len(params.ArrayArguments) > MaxArraySize {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "arrayArguments", Value: len(params.ArrayArguments), Message: "exceeds the maximum array size"})
	}
	if params.Resources.CPUCount < 1 {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "resources.cpuCount", Value: params.Resources.CPUCount, Message: "must be positive"})
	}
	if !wallTimeRegex.MatchString(params.Resources.WallTime) {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "resources.wallTime", Value: params.Resources.WallTime, Message: "expected [D-]HH:MM:SS"})
	}
	if params.Resources.Memory == "" {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "resources.memory", Value: params.Resources.Memory, Message: "required"})
	}
	if params.Command == "" {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "command", Value: params.Command, Message: "required"})
	}
	if params.OutputDirectory == "" {
		result = multierror.Append(result, &atlaserrors.ErrInvalidArgument{Name: "outputDirectory", Value: params.OutputDirectory, Message: "required"})
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.WithMessagef(err, "invalid %s job for batch %d", params.Role, params.BatchIndex)
	}

	args := make([]toi.TargetID, len(params.ArrayArguments))
	copy(args, params.ArrayArguments)
	return &JobDescriptor{
		role:            params.Role,
		batchIndex:      params.BatchIndex,
		arrayArguments:  args,
		resources:       params.Resources,
		command:         params.Command,
		email:           params.Email,
		outputDirectory: params.OutputDirectory,
	}, nil
}

// GetRole returns the role of the job.
func (d *JobDescriptor) GetRole() Role {
	return d.role
}

// GetBatchIndex returns the index of the batch the job was built for.
func (d *JobDescriptor) GetBatchIndex() int {
	return d.batchIndex
}

// GetArrayArguments returns a copy of the TOIs handled by the job, one per array index.
func (d *JobDescriptor) GetArrayArguments() []toi.TargetID {
	rv := make([]toi.TargetID, len(d.arrayArguments))
	copy(rv, d.arrayArguments)
	return rv
}

// GetArrayLen returns the number of array tasks.
func (d *JobDescriptor) GetArrayLen() int {
	return len(d.arrayArguments)
}

func (d *JobDescriptor) GetResources() ResourceSpec {
	return d.resources
}

func (d *JobDescriptor) GetCommand() string {
	return d.command
}

func (d *JobDescriptor) GetEmail() string {
	return d.email
}

func (d *JobDescriptor) GetOutputDirectory() string {
	return d.outputDirectory
}
