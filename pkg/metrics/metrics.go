// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AgentDuration tracks agent response duration per chat call.
	AgentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_response_duration_seconds",
			Help:    "Agent response duration in seconds",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"status"},
	)

	// ChatsTotal tracks chat calls by kind (start or continue) and status.
	ChatsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chats_total",
			Help: "Total chat calls",
		},
		[]string{"kind", "status"},
	)

	// EmbeddingsTotal tracks embedding vectors computed.
	EmbeddingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embeddings_computed_total",
			Help: "Total embedding vectors computed",
		},
	)

	// DocumentsSeeded tracks documents written by seeding runs.
	DocumentsSeeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_seeded_total",
			Help: "Total documents written by seeding runs",
		},
	)

	// StoreErrors tracks failed document store operations.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total failed document store operations",
		},
		[]string{"operation"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordChat records metrics for a chat call.
func RecordChat(kind, status string, duration float64) {
	ChatsTotal.WithLabelValues(kind, status).Inc()
	AgentDuration.WithLabelValues(status).Observe(duration)
}

// RecordStoreError records a failed store operation.
func RecordStoreError(operation string) {
	StoreErrors.WithLabelValues(operation).Inc()
}
