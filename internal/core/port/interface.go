package port

import (
	"context"
	"restaurant-backend/internal/core/domain/models"
)

type OrderService interface {
	CreateOrder(ctx context.Context, newOrder models.CreateOrder) (models.OrderResponse, error)
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, newOrder models.CreateOrder) (models.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]models.Order, error)
}

type NotificationService interface {
	SendUnified(ctx context.Context, req models.UnifiedRequest) (models.UnifiedNotificationOutcome, error)
	SendWhatsApp(ctx context.Context, message, toNumber string) models.NotificationResult
	SendPush(ctx context.Context, title, body, fcmToken string) models.PushOutcome
	ValidateConfig() map[string]bool
}

type GeocodeService interface {
	Resolve(ctx context.Context, lat, lng float64) (string, error)
}

// Channel adapters. None of them return an error: failures are reported in the result.

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) models.NotificationResult
}

type OrderEmailer interface {
	SendOrderEmail(ctx context.Context, row models.OrderView) models.NotificationResult
}

type OrderWhatsApp interface {
	SendOrderWhatsApp(ctx context.Context, order models.OrderView) models.NotificationResult
}

type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, message, toNumber string) models.NotificationResult
	Configured() bool
}

type PushSender interface {
	SendPush(ctx context.Context, title, body, token string) models.NotificationResult
	Configured() bool
}

// SwitchablePushSender is a push channel that is only invoked when explicitly enabled.
type SwitchablePushSender interface {
	PushSender
	Enabled() bool
}

type OrderMirror interface {
	MirrorOrder(ctx context.Context, order models.OrderView) models.MirrorResult
}

type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
