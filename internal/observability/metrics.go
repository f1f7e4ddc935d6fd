// Package observability provides Prometheus instrumentation for the
// ingestion and analysis pipeline.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the pipeline.
type Metrics struct {
	PaymentsIngested   prometheus.Counter
	DuplicatesSkipped  prometheus.Counter
	TickersAnalyzed    prometheus.Counter
	AnalysisErrors     prometheus.Counter
	AnalysisDuration   prometheus.Histogram
	BackfillDuration   prometheus.Histogram
	registry           *prometheus.Registry
}

// New creates a Metrics with its own registry. Collectors are registered
// with promauto so duplicate registration panics at startup, not at runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		PaymentsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "dividend_payments_ingested_total",
			Help: "Total number of dividend payments written by backfill.",
		}),
		DuplicatesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "dividend_payments_duplicates_total",
			Help: "Total number of already-ingested payments skipped by backfill.",
		}),
		TickersAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Name: "dividend_tickers_analyzed_total",
			Help: "Total number of successful per-ticker analysis runs.",
		}),
		AnalysisErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dividend_analysis_errors_total",
			Help: "Total number of failed per-ticker analysis runs.",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dividend_analysis_duration_seconds",
			Help:    "Duration of a single ticker analysis run.",
			Buckets: prometheus.DefBuckets,
		}),
		BackfillDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dividend_backfill_duration_seconds",
			Help:    "Duration of a single ticker backfill.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		registry: reg,
	}
}

// AnalysisTimer returns a timer that observes into AnalysisDuration.
func (m *Metrics) AnalysisTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.AnalysisDuration)
}

// BackfillTimer returns a timer that observes into BackfillDuration.
func (m *Metrics) BackfillTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.BackfillDuration)
}

// Handler returns an HTTP handler exposing the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
