package order

import (
	"context"
	"errors"
	"fmt"
	"restaurant-backend/internal/adapter/metrics"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
	"strings"
)

// Channels are the best-effort side effects run after an order is persisted.
type Channels struct {
	SMS      port.SMSSender
	Mirror   port.OrderMirror
	Email    port.OrderEmailer
	WhatsApp port.OrderWhatsApp
	// Publisher is optional.
	Publisher port.OrderEventPublisher
}

type Service struct {
	log         logger.Logger
	db          port.OrderRepository
	ch          Channels
	ownerNumber string
}

func NewOrderService(db port.OrderRepository, ch Channels, ownerNumber string, log logger.Logger) *Service {
	return &Service{
		log:         log,
		db:          db,
		ch:          ch,
		ownerNumber: ownerNumber,
	}
}

// CreateOrder persists the order and then runs every notification step in order.
// Only the insert can fail the call.
func (svc *Service) CreateOrder(ctx context.Context, newOrder models.CreateOrder) (models.OrderResponse, error) {
	if err := validateOrder(newOrder); err != nil {
		svc.log.Warn(ctx, types.ActionValidationFailed, "invalid order", "reason", err.Error())
		return models.OrderResponse{}, fmt.Errorf("%w: %v", models.ErrorValidationFailed, err)
	}

	order, err := svc.db.CreateOrder(ctx, newOrder)
	if err != nil {
		svc.log.Error(ctx, types.ActionDBTransactionFailed, "error in create order", err)
		return models.OrderResponse{}, err
	}
	metrics.OrdersCreatedTotal.Inc()
	svc.log.Info(ctx, types.ActionOrderCreated, "order stored", "order_id", order.ID)

	view := order.View()

	sms := svc.ch.SMS.SendSMS(ctx, svc.ownerNumber, fmt.Sprintf("New order: %s from %s", order.Item, order.Name))
	metrics.ObserveNotification(models.ChannelSMS, sms.Success)

	mirror := svc.ch.Mirror.MirrorOrder(ctx, view)
	if mirror.Success {
		email := svc.ch.Email.SendOrderEmail(ctx, mirror.Row)
		metrics.ObserveNotification(models.ChannelEmail, email.Success)
	} else {
		svc.log.Warn(ctx, types.ActionNotificationSkipped, "mirror failed, email skipped",
			"order_id", order.ID,
			"reason", mirror.Error,
		)
	}

	whatsapp := svc.ch.WhatsApp.SendOrderWhatsApp(ctx, view)
	metrics.ObserveNotification(models.ChannelUltraMsg, whatsapp.Success)

	svc.publish(ctx, order)

	resp := models.OrderResponse{ID: order.ID, Status: models.StatusCreated}
	if whatsapp.Success {
		resp.Notification = "success"
	}
	return resp, nil
}

func (svc *Service) publish(ctx context.Context, order models.Order) {
	if svc.ch.Publisher == nil {
		return
	}
	if err := svc.ch.Publisher.PublishOrderCreated(ctx, models.NewOrderCreatedEvent(order)); err != nil {
		svc.log.Error(ctx, types.ActionRabbitmqPublishFailed, "order event not published", err, "order_id", order.ID)
		return
	}
	svc.log.Debug(ctx, types.ActionOrderPublished, "order event published", "order_id", order.ID)
}

// ListOrders returns the most recent orders, newest first.
func (svc *Service) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = models.DefaultListLimit
	}
	orders, err := svc.db.ListRecentOrders(ctx, limit)
	if err != nil {
		svc.log.Error(ctx, types.ActionDBQueryFailed, "error in list orders", err)
		return nil, err
	}
	svc.log.Debug(ctx, types.ActionOrdersListed, "orders listed", "count", len(orders))
	return orders, nil
}

func validateOrder(order models.CreateOrder) error {
	if strings.TrimSpace(order.Name) == "" {
		return errors.New("name must not be empty")
	}
	if strings.TrimSpace(order.Item) == "" {
		return errors.New("item must not be empty")
	}
	if strings.TrimSpace(order.Phone) == "" {
		return errors.New("phone must not be empty")
	}
	return nil
}
