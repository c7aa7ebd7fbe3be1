// Package metrics holds the prometheus collectors for the ingestion service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	IngestCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "imagedrop",
		Name:      "ingest_committed_total",
		Help:      "Total assets durably committed.",
	})
	IngestRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imagedrop",
		Name:      "ingest_rejected_total",
		Help:      "Total uploads rejected by validation, by reason.",
	}, []string{"reason"})
	StorageFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imagedrop",
		Name:      "storage_failures_total",
		Help:      "Total backing-store failures, by stage.",
	}, []string{"stage"})
	IngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "imagedrop",
		Name:      "ingest_duration_seconds",
		Help:      "Wall time of successful ingest commits.",
		Buckets:   prometheus.DefBuckets,
	})
	JanitorPurged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "imagedrop",
		Name:      "janitor_purged_total",
		Help:      "Total FAILED tombstones cleaned up by the janitor.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(IngestCommitted, IngestRejected, StorageFailures, IngestDuration, JanitorPurged)
}

// Handler returns the /metrics scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
