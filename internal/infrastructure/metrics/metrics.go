package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	LedgerRefreshes prometheus.Counter
	DocumentsStored prometheus.Counter

	// Position metrics
	PositionsComputed prometheus.Counter
	ComputeDuration   prometheus.Histogram
	ComputeErrors     *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		LedgerRefreshes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestia_ledger_refreshes_total",
			Help: "Total number of forced ledger refreshes",
		}),
		DocumentsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestia_documents_stored_total",
			Help: "Total number of ledger document revisions stored",
		}),

		// Position metrics
		PositionsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vestia_positions_computed_total",
			Help: "Total number of position computations",
		}),
		ComputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vestia_position_compute_duration_seconds",
			Help:    "Duration of position computations",
			Buckets: prometheus.DefBuckets,
		}),
		ComputeErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestia_position_compute_errors_total",
				Help: "Total number of position computation errors by type",
			},
			[]string{"error_type"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vestia_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vestia_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
