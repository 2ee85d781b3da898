// Package toi resolves which TESS Objects of Interest (TOIs) still need to be analysed.
package toi

import (
	"strconv"

	"github.com/tess-atlas/slurm-utils/internal/common/slices"
)

// TargetID identifies a single TOI, e.g. 101.
type TargetID int

func (id TargetID) String() string {
	return strconv.Itoa(int(id))
}

// TargetSet is an ordered set of TargetIDs.
// Ordering is the order in which ids were first seen; duplicates are dropped.
type TargetSet struct {
	ids   []TargetID
	index map[TargetID]bool
}

// NewTargetSet creates a TargetSet from ids, keeping the first occurrence of each id.
func NewTargetSet(ids ...TargetID) TargetSet {
	unique := slices.Unique(ids)
	if unique == nil {
		unique = []TargetID{}
	}
	index := make(map[TargetID]bool, len(unique))
	for _, id := range unique {
		index[id] = true
	}
	return TargetSet{ids: unique, index: index}
}

// Len returns the number of ids in the set.
func (s TargetSet) Len() int {
	return len(s.ids)
}

// Contains reports whether id is a member of the set.
func (s TargetSet) Contains(id TargetID) bool {
	return s.index[id]
}

// IDs returns the members of the set in insertion order.
// The returned slice is a copy and may be modified by the caller.
func (s TargetSet) IDs() []TargetID {
	rv := make([]TargetID, len(s.ids))
	copy(rv, s.ids)
	return rv
}
