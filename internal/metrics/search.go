package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quarry",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"direction", "status"},
	)

	ChannelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quarry",
			Name:      "channel_duration_seconds",
			Help:      "Retrieval channel call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"channel"},
	)

	ChannelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quarry",
			Name:      "channel_errors_total",
			Help:      "Total retrieval channel failures",
		},
		[]string{"channel"},
	)

	FusedPoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "quarry",
			Name:      "fused_pool_size",
			Help:      "Size of the fused candidate pool per request",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 400, 800},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(ChannelDuration)
	prometheus.MustRegister(ChannelErrorsTotal)
	prometheus.MustRegister(FusedPoolSize)
	searchMetricsRegistered = true
}
