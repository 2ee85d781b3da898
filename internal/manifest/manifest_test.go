package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tess-atlas/slurm-utils/internal/render"
)

type recordingWriter struct {
	scripts []render.SubmitScript
	err     error
}

func (w *recordingWriter) WriteSubmit(s render.SubmitScript) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.scripts = append(w.scripts, s)
	return "/out/submit/submit.sh", nil
}

func TestManifest_Add(t *testing.T) {
	var m Manifest
	m.Add("gen_0.sh", "pe_0.sh")
	m.Add("", "pe_1.sh")

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.GenerationCount())
	assert.Equal(t, []string{"gen_0.sh", ""}, m.GenerationPaths)
}

func TestAssemble(t *testing.T) {
	tests := map[string]struct {
		manifest Manifest
		chain    bool
		expected render.SubmitScript
	}{
		"generation before analysis": {
			manifest: Manifest{
				GenerationPaths: []string{"g0", "g1"},
				AnalysisPaths:   []string{"a0", "a1"},
			},
			expected: render.SubmitScript{
				Attempts:   1,
				Generation: []render.SubmitEntry{{Script: "g0"}, {Script: "g1"}},
				Analysis:   []render.SubmitEntry{{Script: "a0"}, {Script: "a1"}},
			},
		},
		"skipped generation entries are dropped": {
			manifest: Manifest{
				GenerationPaths: []string{"", ""},
				AnalysisPaths:   []string{"a0", "a1"},
			},
			expected: render.SubmitScript{
				Attempts:   1,
				Generation: []render.SubmitEntry{},
				Analysis:   []render.SubmitEntry{{Script: "a0"}, {Script: "a1"}},
			},
		},
		"empty manifest": {
			manifest: Manifest{},
			expected: render.SubmitScript{
				Attempts:   1,
				Generation: []render.SubmitEntry{},
				Analysis:   []render.SubmitEntry{},
			},
		},
		"chained dependencies": {
			manifest: Manifest{
				GenerationPaths: []string{"g0", "", "g2"},
				AnalysisPaths:   []string{"a0", "a1", "a2"},
			},
			chain: true,
			expected: render.SubmitScript{
				Attempts: 1,
				Generation: []render.SubmitEntry{
					{Script: "g0", Var: "GEN_0"},
					{Script: "g2", Var: "GEN_2"},
				},
				Analysis: []render.SubmitEntry{
					{Script: "a0", After: "GEN_0"},
					{Script: "a1"},
					{Script: "a2", After: "GEN_2"},
				},
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			writer := &recordingWriter{}
			logger, _ := test.NewNullLogger()
			a := Assembler{Writer: writer, ChainDependencies: tc.chain, Logger: logger}

			path, err := a.Assemble(tc.manifest)
			require.NoError(t, err)
			assert.Equal(t, "/out/submit/submit.sh", path)

			require.Len(t, writer.scripts, 1)
			if diff := cmp.Diff(tc.expected, writer.scripts[0]); diff != "" {
				t.Errorf("unexpected submit script (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssemble_SubmissionRetries(t *testing.T) {
	writer := &recordingWriter{}
	a := Assembler{Writer: writer, Attempts: 3, Delay: 1500 * time.Millisecond}

	_, err := a.Assemble(Manifest{GenerationPaths: []string{""}, AnalysisPaths: []string{"a0"}})
	require.NoError(t, err)
	require.Len(t, writer.scripts, 1)
	assert.Equal(t, uint(3), writer.scripts[0].Attempts)
	assert.Equal(t, 2, writer.scripts[0].DelaySeconds)
}

func TestAssemble_MismatchedManifest(t *testing.T) {
	a := Assembler{Writer: &recordingWriter{}}
	_, err := a.Assemble(Manifest{GenerationPaths: []string{"g0"}})
	assert.Error(t, err)
}

func TestAssemble_WriteError(t *testing.T) {
	a := Assembler{Writer: &recordingWriter{err: errors.New("disk full")}}
	_, err := a.Assemble(Manifest{GenerationPaths: []string{""}, AnalysisPaths: []string{"a0"}})
	assert.EqualError(t, err, "disk full")
}

// Skipping generation for three batches yields a script with three
// analysis submissions and no generation submissions.
func TestAssemble_SkipGenerationWritesAnalysisOnly(t *testing.T) {
	submitDir := filepath.Join(t.TempDir(), render.SubmitDirName)
	engine, err := render.NewEngine()
	require.NoError(t, err)
	a := Assembler{Writer: &render.ScriptWriter{Engine: engine, SubmitDirectory: submitDir}}

	path, err := a.Assemble(Manifest{
		GenerationPaths: []string{"", "", ""},
		AnalysisPaths:   []string{"/s/slurm_pe_0_job.sh", "/s/slurm_pe_1_job.sh", "/s/slurm_pe_2_job.sh"},
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	script := string(contents)
	assert.Equal(t, 3, strings.Count(script, "submit_job '/s/slurm_pe_"))
	assert.NotContains(t, script, "slurm_gen_")
}
