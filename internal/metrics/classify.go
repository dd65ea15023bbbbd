package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classification and descriptor-source Prometheus metrics.
var (
	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boiledegg",
			Name:      "classifications_total",
			Help:      "Total number of per-compound classifications",
		},
		[]string{"status"}, // "success" / "error"
	)

	DescriptorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boiledegg",
			Name:      "descriptor_requests_total",
			Help:      "Total number of descriptor sidecar requests",
		},
		[]string{"status"}, // "success" / "parse_error" / "error"
	)

	DescriptorRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "boiledegg",
			Name:      "descriptor_request_duration_seconds",
			Help:      "Descriptor sidecar request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	DescriptorCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boiledegg",
			Name:      "descriptor_cache_total",
			Help:      "Descriptor cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var classifierMetricsRegistered bool

// RegisterClassifierMetrics registers classification metrics. Must be called once from main.
func RegisterClassifierMetrics() {
	if classifierMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClassificationsTotal)
	prometheus.MustRegister(DescriptorRequestsTotal)
	prometheus.MustRegister(DescriptorRequestDuration)
	prometheus.MustRegister(DescriptorCacheTotal)
	classifierMetricsRegistered = true
}
