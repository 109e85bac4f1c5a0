package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)

	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders persisted in the primary store",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification attempts per channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	RabbitMQMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rabbitmq_messages_total",
			Help: "RabbitMQ messages by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	RabbitMQReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rabbitmq_reconnect_attempts_total",
			Help: "Total number of RabbitMQ reconnect attempts",
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			OrdersCreatedTotal,
			NotificationsTotal,
			RabbitMQMessagesTotal,
			RabbitMQReconnectsTotal,
		)
	})
}

// ObserveNotification counts one channel attempt.
func ObserveNotification(channel string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	NotificationsTotal.WithLabelValues(channel, outcome).Inc()
}
