package toi

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/tess-atlas/slurm-utils/internal/common/slices"
)

// Resolve returns the TOIs from requested that still need to be analysed.
//
// If forceAll is set every requested TOI is returned. Otherwise TOIs with a result artifact below
// outputDirectory are dropped. In both cases the order of requested is preserved, so identical
// inputs always produce identical batches.
func Resolve(requested TargetSet, outputDirectory string, forceAll bool, reporter log.FieldLogger) ([]TargetID, error) {
	ids := requested.IDs()
	if !forceAll {
		completed, err := ScanCompleted(outputDirectory)
		if err != nil {
			return nil, err
		}
		reporter.WithField("completed", completed.IDs()).Debugf("Searching %s --> %d files found", CompletedSearchPattern(outputDirectory), len(completed))
		ids = slices.Subtract(ids, completed.IDs())
	}
	reporter.Info(ProcessingSummary(requested.Len(), len(ids)))
	return ids, nil
}

// ProcessingSummary describes how many of the requested TOIs will be processed,
// e.g. "TOIs: 5 to process (not analyzing 5/10)".
func ProcessingSummary(requested int, toProcess int) string {
	msg := fmt.Sprintf("TOIs: %d to process", toProcess)
	if toProcess != requested {
		msg += fmt.Sprintf(" (not analyzing %d/%d)", requested-toProcess, requested)
	}
	return msg
}
