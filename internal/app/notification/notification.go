package notification

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"restaurant-backend/internal/adapter/rabbitmq"
	"restaurant-backend/internal/adapter/rabbitmq/notification_subscriber"
	"restaurant-backend/internal/app/bootstrap"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
	"syscall"

	"github.com/rabbitmq/amqp091-go"
)

const alertTitle = "New order"

// NotificationApp consumes order events and alerts the admin through the unified fan-out.
type NotificationApp struct {
	ctx        context.Context
	cancel     context.CancelFunc
	logger     logger.Logger
	subscriber *notification_subscriber.NotificationSubscriber
	handler    rabbitmq.MessageHandler
}

func NewNotificationApp() *NotificationApp {
	cfg := bootstrap.MustConfig()
	log := bootstrap.Logger(cfg, "notification-subscriber")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	subscriber, err := notification_subscriber.NewNotificationSubscriber(ctx, cfg.RabbitMQ, log.With("component", "rabbitmq"))
	if err != nil {
		cancel()
		log.Error(ctx, types.ActionRabbitMQConnectFailed, "failed to connect to RabbitMQ", err)
		os.Exit(1)
	}

	svc := bootstrap.NotificationService(cfg, log.With("component", "notifications"))

	return &NotificationApp{
		ctx:        ctx,
		cancel:     cancel,
		logger:     log,
		subscriber: subscriber,
		handler:    NewOrderEventHandler(svc, log),
	}
}

func (app *NotificationApp) Start() {
	defer app.cancel()

	err := app.subscriber.ConsumeOrderEvents(app.ctx, app.handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(app.ctx, types.ActionRabbitMQConsumeFailed, "error consuming order events", err)
	}

	app.logger.Info(app.ctx, types.ActionGracefulShutdown, "service is shutting down")
	if err := app.subscriber.Close(); err != nil {
		app.logger.Error(app.ctx, types.ActionGracefulShutdown, "error closing RabbitMQ connection", err)
	}
}

// NewOrderEventHandler turns each order.created event into one unified notification.
// Channel failures are not redelivered; only undecodable events and a missing channel setup are rejected.
func NewOrderEventHandler(svc port.NotificationService, log logger.Logger) rabbitmq.MessageHandlerFunc {
	return func(ctx context.Context, delivery amqp091.Delivery) error {
		event, err := rabbitmq.DecodeOrderCreated(delivery)
		if err != nil {
			return err
		}

		outcome, err := svc.SendUnified(ctx, models.UnifiedRequest{
			Message: AlertMessage(event),
			Title:   alertTitle,
		})
		if err != nil {
			return fmt.Errorf("order %d: %w", event.OrderID, err)
		}

		if !outcome.OverallSuccess {
			log.Warn(ctx, types.ActionNotificationFailed, "no channel delivered the order alert", "order_id", event.OrderID)
		}
		return nil
	}
}

func AlertMessage(event models.OrderCreatedEvent) string {
	return fmt.Sprintf("Order #%d: %s for %s (%s)", event.OrderID, event.Item, event.Name, event.Phone)
}
