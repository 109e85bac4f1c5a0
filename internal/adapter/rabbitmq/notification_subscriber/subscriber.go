package notification_subscriber

import (
	"context"
	"errors"
	"fmt"
	"restaurant-backend/internal/adapter/rabbitmq"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// prefetch bounds unacknowledged deliveries; each one runs a full fan-out.
const prefetch = 5

// NotificationSubscriber consumes order events and hands them to a handler.
type NotificationSubscriber struct {
	conn *rabbitmq.Connection
	log  logger.Logger
}

func NewNotificationSubscriber(ctx context.Context, cfg config.RabbitMQConfig, log logger.Logger) (*NotificationSubscriber, error) {
	conn, err := rabbitmq.NewConnection(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQConnectFailed, "failed to create RabbitMQ connection", err)
		return nil, fmt.Errorf("failed to create RabbitMQ connection: %w", err)
	}

	if err := rabbitmq.SetupRabbitMQ(ctx, conn, log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ: %w", err)
	}

	return &NotificationSubscriber{
		conn: conn,
		log:  log,
	}, nil
}

// ConsumeOrderEvents blocks until ctx is cancelled or the delivery channel closes.
func (s *NotificationSubscriber) ConsumeOrderEvents(ctx context.Context, handler rabbitmq.MessageHandler) error {
	ch := s.conn.Channel()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		s.log.Error(ctx, types.ActionRabbitMQConsumeFailed, "failed to set prefetch", err)
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	msgs, err := ch.Consume(
		rabbitmq.NotificationsQueue, // queue name
		"",                          // consumer name (empty for auto-generation)
		false,                       // auto-ack
		false,                       // exclusive
		false,                       // no-local
		false,                       // no-wait
		nil,                         // arguments
	)
	if err != nil {
		s.log.Error(ctx, types.ActionRabbitMQConsumeFailed, "failed to start consuming order events", err)
		return fmt.Errorf("failed to start consuming order events: %w", err)
	}

	s.log.Info(ctx, types.ActionRabbitMQConsumeStarted, "started consuming from notifications queue")

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, types.ActionGracefulShutdown, "stopping consumption due to context cancellation")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				err := errors.New("order events channel closed")
				s.log.Error(ctx, types.ActionRabbitMQConsumeFailed, "delivery channel closed", err)
				return err
			}
			Process(ctx, s.log, msg, handler)
		}
	}
}

// Process runs handler on one delivery, acking on success and dead-lettering on failure.
func Process(ctx context.Context, log logger.Logger, msg amqp091.Delivery, handler rabbitmq.MessageHandler) {
	log.Debug(ctx, types.ActionNotificationReceived, "received order event", "message_id", msg.MessageId)

	if err := handler.HandleMessage(ctx, msg); err != nil {
		rabbitmq.RecordConsume(false)
		log.Error(ctx, types.ActionMessageProcessingFailed, "failed to process order event", err)
		if err := msg.Nack(false, false); err != nil {
			log.Error(ctx, types.ActionRabbitMQNackFailed, "failed to nack order event", err)
		}
		return
	}

	rabbitmq.RecordConsume(true)
	if err := msg.Ack(false); err != nil {
		log.Error(ctx, types.ActionRabbitMQAckFailed, "failed to ack order event", err)
	}
}

func (s *NotificationSubscriber) Close() error {
	return s.conn.Close()
}
