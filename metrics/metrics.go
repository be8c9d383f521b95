package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CorruptValues counts stored values that failed to decode. The store
	// treats such values as absent, so without this counter corruption would
	// be indistinguishable from data loss.
	CorruptValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvboard_corrupt_values_total",
			Help: "Stored values that failed to decode, by document kind",
		},
		[]string{"kind"},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "kvboard_http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kvboard_http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)
