package rabbitmq

import (
	"encoding/json"
	"fmt"
	"restaurant-backend/internal/core/domain/models"

	"github.com/rabbitmq/amqp091-go"
)

// DecodeOrderCreated parses an order.created delivery.
func DecodeOrderCreated(delivery amqp091.Delivery) (models.OrderCreatedEvent, error) {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		return models.OrderCreatedEvent{}, fmt.Errorf("invalid order event: %w", err)
	}
	if event.OrderID == 0 {
		return models.OrderCreatedEvent{}, fmt.Errorf("invalid order event: missing order_id")
	}
	return event, nil
}
