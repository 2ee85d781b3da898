package jobs

import (
	"fmt"
)

// Role distinguishes the two kinds of job generated for every batch.
type Role string

const (
	// RoleGeneration prepares the data needed by the analysis of each TOI.
	RoleGeneration Role = "generation"
	// RoleAnalysis runs the parameter estimation for each TOI.
	RoleAnalysis Role = "analysis"
)

// ShortName is used in script, log and job names.
func (r Role) ShortName() string {
	switch r {
	case RoleGeneration:
		return "gen"
	case RoleAnalysis:
		return "pe"
	default:
		return string(r)
	}
}

func (r Role) Valid() bool {
	return r == RoleGeneration || r == RoleAnalysis
}

// ResourceSpec holds the resources requested from the scheduler for every array task.
type ResourceSpec struct {
	CPUCount int
	// Wall time limit as HH:MM:SS.
	WallTime string
	Memory   string
	// Node-local scratch space; empty requests none.
	ScratchMemory string
}

func (r ResourceSpec) String() string {
	s := fmt.Sprintf("cpus=%d time=%s mem=%s", r.CPUCount, r.WallTime, r.Memory)
	if r.ScratchMemory != "" {
		s += fmt.Sprintf(" tmp=%s", r.ScratchMemory)
	}
	return s
}

// RoleResourceTable holds the resources requested for each role.
type RoleResourceTable map[Role]ResourceSpec

// DefaultRoleResources are the resources each role has been sized for.
var DefaultRoleResources = RoleResourceTable{
	RoleGeneration: {
		CPUCount: 1,
		WallTime: "20:00:00",
		Memory:   "1000MB",
	},
	RoleAnalysis: {
		CPUCount:      2,
		WallTime:      "300:00:00",
		Memory:        "1500MB",
		ScratchMemory: "500M",
	},
}
