package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_lookup"

// Metrics holds the Prometheus counters, histograms, and gauges for the lookup service.
type Metrics struct {
	// Lookup metrics.
	Lookups        *prometheus.CounterVec // labels: trigger={query,location}, state={done,failed,idle}
	LookupDuration *prometheus.HistogramVec
	LookupsRunning prometheus.Gauge

	// Upstream API metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: service={geocoding,forecast,iplocation}, outcome={success,error,rejected}
	UpstreamDuration *prometheus.HistogramVec // labels: service

	// Display and event metrics.
	StaleRendersDiscarded prometheus.Counter
	EventsPublished       prometheus.Counter
	EventPublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.LookupsRunning,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.StaleRendersDiscarded,
		m.EventsPublished,
		m.EventPublishErrors,
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
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Finished lookups by trigger and final state.",
		}, []string{"trigger", "state"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "End-to-end lookup duration from submission to render or failure.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"trigger"}),
		LookupsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lookups_in_flight",
			Help:      "Lookups currently waiting on an upstream call.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by service and outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service"}),
		StaleRendersDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_renders_discarded_total",
			Help:      "Results dropped because a newer lookup had already rendered.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Lookup events written to the event topic.",
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_publish_errors_total",
			Help:      "Lookup events that could not be written.",
		}),
	}
}
