// Package metric collects run statistics of the converter in a private
// Prometheus registry and dumps them in the text exposition format, for
// node_exporter's textfile collector.
package metric

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wnconvert"

// Metrics contains every metric a conversion run reports.
type Metrics struct {
	registry *prometheus.Registry

	PhaseDuration *prometheus.GaugeVec   // by phase
	PhaseFailures *prometheus.CounterVec // by phase

	Senses     prometheus.Gauge
	Synsets    prometheus.Gauge
	Overridden prometheus.Gauge
	Inverses   *prometheus.GaugeVec // by level: sense, synset
	Duplicates prometheus.Gauge

	Files     *prometheus.CounterVec // by status: written, unchanged, out_of_scope
	Published *prometheus.CounterVec // by table

	LastSuccess prometheus.Gauge
}

// New creates the metrics and registers them with a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		PhaseDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "phase",
			Name:      "duration_seconds",
			Help:      "Wall time of the last run of each pipeline phase",
		}, []string{"phase"}),

		PhaseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "phase",
			Name:      "failures_total",
			Help:      "Number of failed pipeline phases",
		}, []string{"phase"}),

		Senses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "lexicon",
			Name:      "senses",
			Help:      "Senses in the converted lexicon",
		}),

		Synsets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "lexicon",
			Name:      "synsets",
			Help:      "Synsets in the converted lexicon",
		}),

		Overridden: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "overridden_ids",
			Help:      "Sense ids taken from the legacy files instead of the member order",
		}),

		Inverses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "inverse_edges_added",
			Help:      "Inverse relation edges added by the last reconciliation",
		}, []string{"level"}),

		Duplicates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duplicate_entries",
			Help:      "Lemma and part-of-speech pairs found more than once",
		}),

		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "files_total",
			Help:      "Output documents by write outcome",
		}, []string{"status"}),

		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "publish",
			Name:      "rows_total",
			Help:      "Rows inserted into the snapshot tables",
		}, []string{"table"}),

		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that completed without errors",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.PhaseDuration, m.PhaseFailures,
		m.Senses, m.Synsets, m.Overridden, m.Inverses, m.Duplicates,
		m.Files, m.Published, m.LastSuccess,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePhase records the outcome of one phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration, failed bool) {
	m.PhaseDuration.WithLabelValues(phase).Set(d.Seconds())
	if failed {
		m.PhaseFailures.WithLabelValues(phase).Inc()
	}
}

// MarkSuccess stamps the run as successful.
func (m *Metrics) MarkSuccess(now time.Time) {
	m.LastSuccess.Set(float64(now.Unix()))
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
