package toi

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateResultFiles makes it look as if each of ids had been analysed below outdir.
func generateResultFiles(t *testing.T, outdir string, ids ...TargetID) {
	t.Helper()
	for _, id := range ids {
		dir := filepath.Join(outdir, fmt.Sprintf("toi_%d_files", id))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(outdir, fmt.Sprintf("toi_%d.ipynb", id)), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("toi_%d.netcdf", id)), nil, 0o644))
	}
}

func idRange(from, to int) []TargetID {
	ids := make([]TargetID, 0, to-from)
	for i := from; i < to; i++ {
		ids = append(ids, TargetID(i))
	}
	return ids
}

func writeMalformedResult(outdir string) error {
	dir := filepath.Join(outdir, "toi_x1_files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "toi_x1.netcdf"), nil, 0o644)
}
