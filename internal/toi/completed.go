package toi

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
)

const (
	// ResultDirGlob matches the per-TOI result directories written by the analysis job.
	ResultDirGlob = "toi_*_files"
	// ResultFileGlob matches the artifact whose presence marks a TOI as analysed.
	ResultFileGlob = "*.netcdf"
)

var resultDirRegex = regexp.MustCompile(`^toi_(\d+)_files$`)

// CompletionRecord maps each analysed TOI to the path of its result artifact.
type CompletionRecord map[TargetID]string

// Has reports whether a result artifact was found for id.
func (r CompletionRecord) Has(id TargetID) bool {
	_, ok := r[id]
	return ok
}

// IDs returns the analysed TOIs in ascending order.
func (r CompletionRecord) IDs() []TargetID {
	ids := maps.Keys(r)
	slices.Sort(ids)
	return ids
}

// CompletedSearchPattern returns the glob used to find result artifacts below outputDirectory.
func CompletedSearchPattern(outputDirectory string) string {
	return filepath.Join(outputDirectory, ResultDirGlob, ResultFileGlob)
}

// ScanCompleted finds all TOIs below outputDirectory that already have a result artifact.
// Symlinked result directories are followed. A missing outputDirectory is treated as containing no results.
// A result directory whose name does not carry an integer TOI number yields an *atlaserrors.ErrParse.
func ScanCompleted(outputDirectory string) (CompletionRecord, error) {
	record := CompletionRecord{}
	if _, err := os.Stat(outputDirectory); os.IsNotExist(err) {
		return record, nil
	}
	pattern := CompletedSearchPattern(outputDirectory)
	paths, err := zglob.GlobFollowSymlinks(pattern)
	if err != nil {
		if os.IsNotExist(err) {
			return record, nil
		}
		return nil, errors.Wrapf(err, "error searching %s", pattern)
	}
	for _, path := range paths {
		id, err := targetIDFromResultPath(path)
		if err != nil {
			return nil, err
		}
		record[id] = path
	}
	return record, nil
}

func targetIDFromResultPath(path string) (TargetID, error) {
	dir := filepath.Base(filepath.Dir(path))
	match := resultDirRegex.FindStringSubmatch(dir)
	if match == nil {
		return 0, errors.WithStack(&atlaserrors.ErrParse{
			Source:  path,
			Value:   dir,
			Message: "result directory does not contain a TOI number",
		})
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, errors.WithStack(&atlaserrors.ErrParse{
			Source:  path,
			Value:   match[1],
			Message: err.Error(),
		})
	}
	return TargetID(id), nil
}
