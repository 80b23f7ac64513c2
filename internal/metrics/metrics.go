// Package metrics registers the service's Prometheus collectors on the
// default registry. They are exposed at /metrics by the router.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house_preview_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "house_preview_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PreviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "house_previews_created_total",
			Help: "Total number of house previews submitted",
		},
	)

	PreviewsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "house_previews_deleted_total",
			Help: "Total number of house previews deleted",
		},
	)

	CustomersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "house_preview_customers_created_total",
			Help: "Total number of customers created by submissions",
		},
	)

	BlobOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "house_preview_blob_operations_total",
			Help: "Blob storage operations by kind and result",
		},
		[]string{"operation", "result"}, // operation: put, exists, delete
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordBlobOperation counts a blob storage call by outcome.
func RecordBlobOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BlobOperations.WithLabelValues(operation, result).Inc()
}
