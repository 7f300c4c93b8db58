package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Board Metrics
	BoardOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_operations_total",
			Help: "Total number of board operations",
		},
		[]string{"operation"}, // add_task, merge, toggle, reorder, etc.
	)

	// Reminder Metrics
	ScheduledReminders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduled_reminders_total",
			Help: "Number of reminder timers currently armed",
		},
	)

	PushDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "Total number of web push deliveries",
		},
		[]string{"status"}, // sent, failed
	)

	// Advisor Metrics
	AdvisorRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_requests_total",
			Help: "Total number of AI advisor calls",
		},
		[]string{"mode", "status"}, // success, failure, cooldown
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "operation"},
	)
)

// TrackDBOperation times a database operation; observe via the returned timer.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackBoardOperation increments the board operation counter
func TrackBoardOperation(operation string) {
	BoardOperationsTotal.WithLabelValues(operation).Inc()
}

// TrackPushDelivery records the outcome of one push send
func TrackPushDelivery(status string) {
	PushDeliveriesTotal.WithLabelValues(status).Inc()
}

// TrackAdvisorRequest records an AI advisor call outcome
func TrackAdvisorRequest(mode, status string) {
	AdvisorRequestsTotal.WithLabelValues(mode, status).Inc()
}

// TrackError increments the error counter by type
func TrackError(errorType, operation string) {
	ErrorsTotal.WithLabelValues(errorType, operation).Inc()
}
