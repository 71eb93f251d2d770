package content

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "content",
		Name:      "requests_total",
		Help:      "Content API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Subsystem: "content",
		Name:      "request_seconds",
		Help:      "Content API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}
