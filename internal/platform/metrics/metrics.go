package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for delivery and sync health. Registered once at
// package load; processes expose them through promhttp on the API mux.
var (
	OutboxClaimedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_messages_claimed_total",
			Help: "Total number of outbox messages claimed by delivery workers",
		},
	)

	OutboxSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_messages_sent_total",
			Help: "Total number of outbox messages delivered successfully",
		},
	)

	OutboxRetriedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_messages_retried_total",
			Help: "Total number of outbox messages returned to pending after a failed delivery",
		},
	)

	OutboxFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "outbox_messages_failed_total",
			Help: "Total number of outbox messages parked after exhausting delivery attempts",
		},
	)

	SyncRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_sync_runs_total",
			Help: "Total number of completed catalog sync runs",
		},
	)

	SyncItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_items_total",
			Help: "Total number of provider items processed per outcome",
		},
		[]string{"outcome"},
	)

	SyncRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_sync_run_duration_seconds",
			Help:    "Duration of catalog sync runs",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		OutboxClaimedTotal,
		OutboxSentTotal,
		OutboxRetriedTotal,
		OutboxFailedTotal,
		SyncRunsTotal,
		SyncItemsTotal,
		SyncRunDuration,
	)
}
