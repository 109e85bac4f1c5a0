package rabbitmq

import "restaurant-backend/internal/adapter/metrics"

const (
	directionPublish = "publish"
	directionConsume = "consume"
)

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func recordPublish(ok bool) {
	metrics.RabbitMQMessagesTotal.WithLabelValues(directionPublish, outcome(ok)).Inc()
}

// RecordConsume counts one delivery handled by a consumer.
func RecordConsume(ok bool) {
	metrics.RabbitMQMessagesTotal.WithLabelValues(directionConsume, outcome(ok)).Inc()
}

func recordReconnect() {
	metrics.RabbitMQReconnectsTotal.Inc()
}
