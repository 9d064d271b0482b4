package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ironhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhub_enrollments_total",
			Help: "Enrollment attempts by operation and result",
		},
		[]string{"operation", "result"},
	)

	WaitlistOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhub_waitlist_operations_total",
			Help: "Waitlist operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhub_notifications_total",
			Help: "Notifications processed by channel and status",
		},
		[]string{"channel", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ironhub_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)

	CheckinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ironhub_checkins_total",
			Help: "QR check-in tokens by status",
		},
		[]string{"status"},
	)

	RemindersQueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ironhub_reminders_queued_total",
			Help: "Session reminders queued by the scheduler",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordEnrollment(operation, result string) {
	EnrollmentsTotal.WithLabelValues(operation, result).Inc()
}

func RecordWaitlist(operation, result string) {
	WaitlistOperationsTotal.WithLabelValues(operation, result).Inc()
}

func RecordNotification(channel, status string) {
	NotificationsTotal.WithLabelValues(channel, status).Inc()
}

func RecordCheckin(status string) {
	CheckinsTotal.WithLabelValues(status).Inc()
}

func RecordReminder() {
	RemindersQueuedTotal.Inc()
}
