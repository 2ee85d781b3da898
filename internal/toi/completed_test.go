package toi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
)

func TestScanCompleted(t *testing.T) {
	outdir := t.TempDir()
	generateResultFiles(t, outdir, 100, 101, 102)
	// A result directory without a netcdf file is not complete.
	require.NoError(t, os.MkdirAll(filepath.Join(outdir, "toi_103_files"), 0o755))

	record, err := ScanCompleted(outdir)
	require.NoError(t, err)
	assert.Len(t, record, 3)
	for _, id := range []TargetID{100, 101, 102} {
		assert.True(t, record.Has(id))
		assert.Equal(t, filepath.Join(outdir, "toi_"+id.String()+"_files", "toi_"+id.String()+".netcdf"), record[id])
	}
	assert.False(t, record.Has(103))
}

func TestScanCompleted_SymlinkedResultDirectory(t *testing.T) {
	outdir := t.TempDir()
	generateResultFiles(t, outdir, 100)
	target := filepath.Join(t.TempDir(), "results")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "toi_101.netcdf"), []byte{}, 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(outdir, "toi_101_files")))

	record, err := ScanCompleted(outdir)
	require.NoError(t, err)
	assert.Equal(t, []TargetID{100, 101}, record.IDs())
}

func TestScanCompleted_MissingDirectory(t *testing.T) {
	record, err := ScanCompleted(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, record)
}

func TestScanCompleted_MalformedDirectoryName(t *testing.T) {
	outdir := t.TempDir()
	generateResultFiles(t, outdir, 100)
	dir := filepath.Join(outdir, "toi_abc_files")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toi_abc.netcdf"), nil, 0o644))

	_, err := ScanCompleted(outdir)
	require.Error(t, err)
	var parseErr *atlaserrors.ErrParse
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "toi_abc_files", parseErr.Value)
	assert.Equal(t, atlaserrors.ExitParse, atlaserrors.ExitCodeFromError(err))
}

func TestCompletionRecord_IDs(t *testing.T) {
	record := CompletionRecord{12: "c", 3: "a", 7: "b"}
	assert.Equal(t, []TargetID{3, 7, 12}, record.IDs())
	assert.Empty(t, CompletionRecord{}.IDs())
}

func TestCompletedSearchPattern(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "toi_*_files", "*.netcdf"), CompletedSearchPattern("out"))
}
