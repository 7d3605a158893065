// Package metrics counts generation calls, extractions and checkpoints for a
// run and writes them in the Prometheus text format when the run ends.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookmaker"

// Recorder holds the run's counters. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	extractions *prometheus.CounterVec
	checkpoints *prometheus.CounterVec
	chapters    *prometheus.CounterVec
	shortfalls  prometheus.Counter
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_calls_total",
			Help:      "Generation calls by outcome (ok, failed, skipped).",
		}, []string{"outcome"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "json_extractions_total",
			Help:      "Structured replies by extraction outcome.",
		}, []string{"outcome"}),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoints_total",
			Help:      "Document checkpoints by result.",
		}, []string{"result"}),
		chapters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chapters_total",
			Help:      "Chapters emitted per stage.",
		}, []string{"stage"}),
		shortfalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortfalls_total",
			Help:      "Chapter or subheading shortfalls against the requested plan.",
		}),
	}
	r.registry.MustRegister(r.generations, r.extractions, r.checkpoints, r.chapters, r.shortfalls)
	return r
}

func (r *Recorder) Generation(outcome string) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Extraction(outcome string) {
	if r == nil {
		return
	}
	r.extractions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Checkpoint(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	r.checkpoints.WithLabelValues(result).Inc()
}

func (r *Recorder) Chapter(stage string) {
	if r == nil {
		return
	}
	r.chapters.WithLabelValues(stage).Inc()
}

func (r *Recorder) Shortfall() {
	if r == nil {
		return
	}
	r.shortfalls.Inc()
}

// WriteFile writes all counters to path in the node_exporter textfile format.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
