package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard service.
type Metrics struct {
	RunsStarted  prometheus.Counter
	RunsRejected *prometheus.CounterVec // labels: reason={invalid_form,run_in_flight}
	RunsComplete *prometheus.CounterVec // labels: source={model,simulated}
	RunInFlight  prometheus.Gauge

	// Upstream model backend metrics.
	ModelRequests *prometheus.CounterVec // labels: outcome={success,transport_error,bad_status,bad_body}
	ModelDuration prometheus.Histogram

	// Run event publishing metrics.
	RunEventsPublished *prometheus.CounterVec // labels: outcome={success,error}
	PublisherEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RunsStarted,
		m.RunsRejected,
		m.RunsComplete,
		m.RunInFlight,
		m.ModelRequests,
		m.ModelDuration,
		m.RunEventsPublished,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firecast",
			Name:      "runs_started_total",
			Help:      "Total prediction runs started.",
		}),
		RunsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firecast",
			Name:      "runs_rejected_total",
			Help:      "Run submissions rejected before reaching the model backend.",
		}, []string{"reason"}),
		RunsComplete: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firecast",
			Name:      "runs_complete_total",
			Help:      "Completed prediction runs by result source.",
		}, []string{"source"}),
		RunInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "firecast",
			Name:      "run_in_flight",
			Help:      "1 while a prediction run is in flight, 0 otherwise.",
		}),
		ModelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firecast",
			Name:      "model_requests_total",
			Help:      "Model backend requests by outcome.",
		}, []string{"outcome"}),
		ModelDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firecast",
			Name:      "model_request_duration_seconds",
			Help:      "Model backend request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		RunEventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "firecast",
			Name:      "run_events_published_total",
			Help:      "Run audit events published to Kafka by outcome.",
		}, []string{"outcome"}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "firecast",
			Name:      "run_event_publisher_enabled",
			Help:      "1 when the Kafka run event publisher is enabled, 0 otherwise.",
		}),
	}
}
