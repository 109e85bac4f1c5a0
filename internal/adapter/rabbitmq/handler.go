package rabbitmq

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A returned error dead-letters the message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, delivery amqp091.Delivery) error
}

type MessageHandlerFunc func(ctx context.Context, delivery amqp091.Delivery) error

func (f MessageHandlerFunc) HandleMessage(ctx context.Context, delivery amqp091.Delivery) error {
	return f(ctx, delivery)
}
