package datauri

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once
	metrics     *resolverMetrics
)

type resolverMetrics struct {
	resolutionsTotal *prometheus.CounterVec
	fetchedBytes     prometheus.Histogram
}

func getMetrics() *resolverMetrics {
	metricsOnce.Do(func() {
		metrics = &resolverMetrics{
			resolutionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "badges_image_resolutions_total",
					Help: "Total number of embedded image resolutions",
				},
				[]string{"source", "status"},
			),
			fetchedBytes: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "badges_image_payload_bytes",
					Help:    "Size of embedded image payloads",
					Buckets: prometheus.ExponentialBuckets(256, 4, 8),
				},
			),
		}
	})
	return metrics
}
