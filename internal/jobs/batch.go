package jobs

import (
	"github.com/tess-atlas/slurm-utils/internal/common/slices"
	"github.com/tess-atlas/slurm-utils/internal/toi"
)

// MaxArraySize is the largest array job the cluster accepts.
const MaxArraySize = 2048

// Batch is a contiguous run of TOIs handled by a single array job.
type Batch struct {
	// Position of the batch in emission order, starting at 0.
	Index     int
	TargetIDs []toi.TargetID
}

// Len returns the number of TOIs in the batch.
func (b Batch) Len() int {
	return len(b.TargetIDs)
}

// MakeBatches splits ids into batches of maxSize, the last of which may be shorter.
// No ids yields no batches. Panics if maxSize is less than 1.
func MakeBatches(ids []toi.TargetID, maxSize int) []Batch {
	chunks := slices.Chunk(ids, maxSize)
	batches := make([]Batch, len(chunks))
	for i, chunk := range chunks {
		batches[i] = Batch{Index: i, TargetIDs: chunk}
	}
	return batches
}
