package badges

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once
	metrics     *composerMetrics
)

type composerMetrics struct {
	compositionsTotal  *prometheus.CounterVec
	compositionSeconds prometheus.Histogram
}

func getMetrics() *composerMetrics {
	metricsOnce.Do(func() {
		metrics = &composerMetrics{
			compositionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "badges_compositions_total",
					Help: "Total number of badge compositions",
				},
				[]string{"status"},
			),
			compositionSeconds: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "badges_composition_duration_seconds",
					Help:    "Duration of successful badge compositions",
					Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
				},
			),
		}
	})
	return metrics
}
