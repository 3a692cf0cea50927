package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the registry.
type Metrics struct {
	EventsRecorded       prometheus.Counter
	ValidationRejections prometheus.Counter
	WriteDenials         prometheus.Counter
	StorageErrors        prometheus.Counter
	CSVExports           prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: method={forward,reverse}, result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsRecorded,
		m.ValidationRejections,
		m.WriteDenials,
		m.StorageErrors,
		m.CSVExports,
		m.GeocodeRequests,
		m.GeocodeCache,
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
		EventsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "events_recorded_total",
			Help:      "Total event records inserted into the store.",
		}),
		ValidationRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "validation_rejections_total",
			Help:      "Total record submissions rejected before insert.",
		}),
		WriteDenials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "write_denials_total",
			Help:      "Total submissions refused because the registry is read-only.",
		}),
		StorageErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "storage_errors_total",
			Help:      "Total failures of the underlying SQLite store.",
		}),
		CSVExports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "csv_exports_total",
			Help:      "Total CSV export downloads served.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sucesos",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
	}
}
