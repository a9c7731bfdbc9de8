// Package metrics holds the Prometheus collectors shared by the loader,
// the simulation engine and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_dataset_cache_lookups_total",
		Help: "Dataset cache lookups by result (hit, miss, stale).",
	}, []string{"result"})

	DatasetLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_dataset_load_seconds",
		Help:    "Time spent reading and cleaning a transaction file.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	DatasetRowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_dataset_rows_dropped_total",
		Help: "Transaction rows dropped during cleaning, by reason.",
	}, []string{"reason"})

	SimulationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_simulation_runs_total",
		Help: "Completed simulation runs by allocation mode.",
	}, []string{"allocation"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_http_request_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
