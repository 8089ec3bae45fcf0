// Package metrics records per-run lint statistics as Prometheus metrics.
//
// A Recorder owns a private registry, so several runs (or parallel tests)
// never collide. Export is pull-free: WriteTextfile writes the Prometheus
// text format for node_exporter's textfile collector or CI artifacts.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaklabco/stylint/pkg/lint"
)

const namespace = "stylint"

// Recorder holds the counters and histograms of one run.
// All methods are safe for concurrent use, and a nil Recorder is a no-op.
type Recorder struct {
	registry *prometheus.Registry

	// FilesTotal counts processed files by outcome.
	// Labels: outcome (ok, issues, fixed, skipped, errored)
	FilesTotal *prometheus.CounterVec

	// DegradedFilesTotal counts files linted without classifier output.
	DegradedFilesTotal prometheus.Counter

	// ViolationsTotal counts reported violations.
	// Labels: rule, severity
	ViolationsTotal *prometheus.CounterVec

	// CorrectionsTotal counts applied corrections.
	// Labels: rule
	CorrectionsTotal *prometheus.CounterVec

	// FileDurationSeconds measures time spent on each file.
	FileDurationSeconds prometheus.Histogram
}

// New creates a Recorder with all metrics registered on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Files processed, by outcome",
			},
			[]string{"outcome"},
		),
		DegradedFilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_files_total",
			Help:      "Files linted without classifier output",
		}),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Violations reported, by rule and severity",
			},
			[]string{"rule", "severity"},
		),
		CorrectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corrections_total",
				Help:      "Corrections applied, by rule",
			},
			[]string{"rule"},
		),
		FileDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "file_duration_seconds",
			Help:      "Time spent linting and correcting one file",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}

	r.registry.MustRegister(
		r.FilesTotal,
		r.DegradedFilesTotal,
		r.ViolationsTotal,
		r.CorrectionsTotal,
		r.FileDurationSeconds,
	)
	return r
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFile records the outcome of one file. res is nil when err is set.
func (r *Recorder) ObserveFile(res *lint.PipelineResult, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.FileDurationSeconds.Observe(elapsed.Seconds())

	if err != nil || res == nil {
		r.FilesTotal.WithLabelValues("errored").Inc()
		return
	}
	r.FilesTotal.WithLabelValues(outcome(res)).Inc()

	if res.FileResult != nil {
		if res.Degraded() {
			r.DegradedFilesTotal.Inc()
		}
		for _, v := range res.Violations {
			r.ViolationsTotal.WithLabelValues(v.RuleID, string(v.Severity)).Inc()
		}
	}
	for _, c := range res.Corrections {
		r.CorrectionsTotal.WithLabelValues(c.RuleID).Inc()
	}
}

func outcome(res *lint.PipelineResult) string {
	switch {
	case res.Skipped:
		return "skipped"
	case res.Written || res.Modified:
		return "fixed"
	case res.FileResult != nil && res.HasIssues():
		return "issues"
	default:
		return "ok"
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
