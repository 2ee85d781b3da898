package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const MetricPrefix = "slurmjobs_"

// TextfileName is the name of the metrics file written next to the job scripts.
const TextfileName = "metrics.prom"

// RunMetrics holds the gauges describing a single run.
// Each run uses its own registry so the textfile only contains that run.
type RunMetrics struct {
	registry      *prometheus.Registry
	requestedTOIs prometheus.Gauge
	completedTOIs prometheus.Gauge
	toisToProcess prometheus.Gauge
	batches       prometheus.Gauge
	jobs          *prometheus.GaugeVec
	lastRun       prometheus.Gauge
	submitted     prometheus.Gauge
}

func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		requestedTOIs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "requested_tois",
			Help: "Number of TOIs requested",
		}),
		completedTOIs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "completed_tois",
			Help: "Number of requested TOIs skipped because their results already exist",
		}),
		toisToProcess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "tois_to_process",
			Help: "Number of TOIs placed in array jobs",
		}),
		batches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "batches",
			Help: "Number of batches",
		}),
		jobs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricPrefix + "array_jobs",
			Help: "Number of array job scripts written",
		}, []string{"role"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "last_run_timestamp_seconds",
			Help: "Unix time of the run",
		}),
		submitted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricPrefix + "submitted",
			Help: "1 if the jobs were submitted to the scheduler, 0 otherwise",
		}),
	}
	m.registry.MustRegister(
		m.requestedTOIs,
		m.completedTOIs,
		m.toisToProcess,
		m.batches,
		m.jobs,
		m.lastRun,
		m.submitted,
	)
	return m
}

func (m *RunMetrics) SetTargets(requested, toProcess int) {
	m.requestedTOIs.Set(float64(requested))
	m.completedTOIs.Set(float64(requested - toProcess))
	m.toisToProcess.Set(float64(toProcess))
}

func (m *RunMetrics) SetJobs(batches, generationJobs, analysisJobs int) {
	m.batches.Set(float64(batches))
	m.jobs.WithLabelValues("generation").Set(float64(generationJobs))
	m.jobs.WithLabelValues("analysis").Set(float64(analysisJobs))
}

func (m *RunMetrics) SetSubmitted(submitted bool) {
	if submitted {
		m.submitted.Set(1)
	} else {
		m.submitted.Set(0)
	}
}

func (m *RunMetrics) MarkRun() {
	m.lastRun.SetToCurrentTime()
}

func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, for pickup by a node exporter.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "error writing metrics to %s", path)
	}
	return nil
}
