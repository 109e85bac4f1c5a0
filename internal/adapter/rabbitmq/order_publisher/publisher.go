package order_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"restaurant-backend/internal/adapter/rabbitmq"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of the connection used to send messages.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, routingKey string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// OrderPublisher emits order.created events to the order events exchange.
type OrderPublisher struct {
	conn Publisher
	log  logger.Logger
}

// NewOrderPublisher dials RabbitMQ and declares the topology.
func NewOrderPublisher(ctx context.Context, cfg config.RabbitMQConfig, log logger.Logger) (*OrderPublisher, error) {
	conn, err := rabbitmq.NewConnection(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQConnectFailed, "failed to create RabbitMQ connection", err)
		return nil, fmt.Errorf("failed to create RabbitMQ connection: %w", err)
	}

	if err := rabbitmq.SetupRabbitMQ(ctx, conn, log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ: %w", err)
	}

	return NewOrderPublisherWithConn(conn, log), nil
}

func NewOrderPublisherWithConn(conn Publisher, log logger.Logger) *OrderPublisher {
	return &OrderPublisher{conn: conn, log: log}
}

func (p *OrderPublisher) PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error {
	jsonBody, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal order event: %v", models.ErrorRabbitmqPublishFailed, err)
	}

	err = p.conn.PublishWithContext(
		ctx,
		rabbitmq.OrderEventsExchange,    // exchange name
		rabbitmq.OrderCreatedRoutingKey, // routing key
		false,                           // mandatory
		false,                           // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    fmt.Sprintf("order-%d", event.OrderID),
			Body:         jsonBody,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrorRabbitmqPublishFailed, err)
	}

	p.log.Debug(ctx, types.ActionOrderPublished, "order event published",
		"order_id", event.OrderID,
		"routing_key", rabbitmq.OrderCreatedRoutingKey,
	)
	return nil
}

func (p *OrderPublisher) Close() error {
	return p.conn.Close()
}
