package rabbitmq

import (
	"context"
	"fmt"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	OrderEventsExchange    = "order_events"
	OrderCreatedRoutingKey = "order.created"

	NotificationsQueue = "order_notifications_queue"
	DeadLetterQueue    = "dead_letter_queue"
	DeadLetterExchange = "dead_letter_exchange"
)

// SetupRabbitMQ declares the order events exchange, the notifications queue and the dead letter pair.
func SetupRabbitMQ(ctx context.Context, conn *Connection, log logger.Logger) error {
	ch := conn.Channel()

	log.Info(ctx, types.ActionRabbitMQSetup, "setting up RabbitMQ exchanges and queues")

	if err := setupDeadLetterExchange(ctx, ch, log); err != nil {
		return err
	}

	if err := setupOrderEventsExchange(ctx, ch, log); err != nil {
		return err
	}

	if err := setupNotificationsQueue(ctx, ch, log); err != nil {
		return err
	}

	log.Info(ctx, types.ActionRabbitMQSetupComplete, "RabbitMQ setup completed successfully")

	return nil
}

func setupDeadLetterExchange(ctx context.Context, ch *amqp091.Channel, log logger.Logger) error {
	err := ch.ExchangeDeclare(
		DeadLetterExchange, // name
		"fanout",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to declare dead letter exchange", err)
		return fmt.Errorf("failed to declare dead letter exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueue, // name
		true,            // durable
		false,           // auto-deleted
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to declare dead letter queue", err)
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	err = ch.QueueBind(
		DeadLetterQueue,    // queue name
		"",                 // routing key (irrelevant for fanout)
		DeadLetterExchange, // exchange name
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to bind dead letter queue", err)
		return fmt.Errorf("failed to bind dead letter queue: %w", err)
	}

	return nil
}

func setupOrderEventsExchange(ctx context.Context, ch *amqp091.Channel, log logger.Logger) error {
	err := ch.ExchangeDeclare(
		OrderEventsExchange, // name
		"topic",             // type
		true,                // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to declare order events exchange", err)
		return fmt.Errorf("failed to declare order events exchange: %w", err)
	}

	return nil
}

func setupNotificationsQueue(ctx context.Context, ch *amqp091.Channel, log logger.Logger) error {
	// rejected events go to the dead letter exchange
	args := amqp091.Table{
		"x-dead-letter-exchange": DeadLetterExchange,
	}

	_, err := ch.QueueDeclare(
		NotificationsQueue, // name
		true,               // durable
		false,              // auto-deleted
		false,              // exclusive
		false,              // no-wait
		args,               // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to declare notifications queue", err)
		return fmt.Errorf("failed to declare notifications queue: %w", err)
	}

	err = ch.QueueBind(
		NotificationsQueue,     // queue name
		OrderCreatedRoutingKey, // routing key
		OrderEventsExchange,    // exchange name
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		log.Error(ctx, types.ActionRabbitMQSetupFailed, "failed to bind notifications queue", err)
		return fmt.Errorf("failed to bind notifications queue: %w", err)
	}

	return nil
}
