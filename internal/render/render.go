// Package render turns job descriptors into SLURM batch scripts.
package render

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateID names one of the embedded templates.
type TemplateID string

const (
	JobTemplate    TemplateID = "slurm_job.sh.tmpl"
	SubmitTemplate TemplateID = "submit.sh.tmpl"
)

// JobScript holds the fields of JobTemplate.
type JobScript struct {
	JobName         string
	LogFile         string
	CPUCount        int
	WallTime        string
	Memory          string
	ScratchMemory   string
	Email           string
	Account         string
	ArrayEnd        int
	ArrayArgs       []string
	ModuleLoads     string
	LoadEnv         string
	OutputDirectory string
	Command         string
}

// SubmitEntry is a single sbatch call in the submit script.
type SubmitEntry struct {
	Script string
	// Shell variable the job id is captured into; empty if nothing depends on the job.
	Var string
	// Shell variable holding the id of the job this one must wait for; empty for no dependency.
	After string
}

// SubmitScript holds the fields of SubmitTemplate.
// All generation jobs are submitted before any analysis job.
type SubmitScript struct {
	Partition string
	// Each sbatch call is tried up to Attempts times, DelaySeconds apart.
	Attempts     uint
	DelaySeconds int
	Generation   []SubmitEntry
	Analysis     []SubmitEntry
}

// Engine renders the embedded templates.
type Engine struct {
	templates *template.Template
}

func NewEngine() (*Engine, error) {
	templates, err := template.New("").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "error parsing templates")
	}
	return &Engine{templates: templates}, nil
}

// Render executes the template id with fields.
func (e *Engine) Render(id TemplateID, fields interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, string(id), fields); err != nil {
		return nil, errors.Wrapf(err, "error rendering %s", id)
	}
	return buf.Bytes(), nil
}
