package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// visualization engine host.
type Metrics struct {
	StormsLoaded       prometheus.Gauge
	ValidationRejects  prometheus.Counter
	ValidationWarnings prometheus.Counter

	// Ingest metrics (Kafka consumer, when enabled).
	IngestMessages prometheus.Counter
	IngestErrors   prometheus.Counter

	// Derived-output metrics.
	ConesBuilt         prometheus.Counter
	TrackPointsServed  prometheus.Histogram
	HTTPRequestSeconds *prometheus.HistogramVec // label: handler

	// Animation scheduler gauges.
	ActiveAnimations prometheus.Gauge
	QueuedAnimations prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StormsLoaded,
		m.ValidationRejects,
		m.ValidationWarnings,
		m.IngestMessages,
		m.IngestErrors,
		m.ConesBuilt,
		m.TrackPointsServed,
		m.HTTPRequestSeconds,
		m.ActiveAnimations,
		m.QueuedAnimations,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests avoid "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StormsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_viz",
			Name:      "storms_loaded",
			Help:      "Storms currently held in the session store.",
		}),
		ValidationRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_viz",
			Name:      "validation_rejects_total",
			Help:      "Storm records rejected with hard validation errors.",
		}),
		ValidationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_viz",
			Name:      "validation_warnings_total",
			Help:      "Soft validation warnings recorded during ingest.",
		}),
		IngestMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_viz",
			Name:      "ingest_messages_total",
			Help:      "Storm update messages consumed from the ingest topic.",
		}),
		IngestErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_viz",
			Name:      "ingest_errors_total",
			Help:      "Ingest messages skipped due to decode or validation failure.",
		}),
		ConesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_viz",
			Name:      "cones_built_total",
			Help:      "Forecast uncertainty cones computed.",
		}),
		TrackPointsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_viz",
			Name:      "track_points_served",
			Help:      "Points per track response after zoom simplification.",
			Buckets:   []float64{2, 5, 10, 25, 50, 100, 250, 500},
		}),
		HTTPRequestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_viz",
			Name:      "http_request_duration_seconds",
			Help:      "API request duration by handler.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"handler"}),
		ActiveAnimations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_viz",
			Name:      "animations_active",
			Help:      "Storm animations currently granted a frame budget.",
		}),
		QueuedAnimations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_viz",
			Name:      "animations_queued",
			Help:      "Storm animations waiting for a concurrency slot.",
		}),
	}
}
