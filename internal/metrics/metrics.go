package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Chat pipeline metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seclens_chat_queries_total",
			Help: "Total number of processed chat queries",
		},
		[]string{"intent"},
	)

	EmptyResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seclens_chat_empty_results_total",
			Help: "Total number of queries that matched no events",
		},
	)

	InvalidRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seclens_chat_invalid_requests_total",
			Help: "Total number of rejected empty or invalid requests",
		},
	)

	ProcessDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seclens_chat_process_duration_seconds",
			Help:    "Duration of end-to-end query processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Dataset metrics
	DatasetEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seclens_dataset_events",
			Help: "Number of events loaded into the in-memory store",
		},
	)
)
