package order

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"restaurant-backend/internal/adapter/http"
	"restaurant-backend/internal/adapter/notifier/email"
	"restaurant-backend/internal/adapter/notifier/sms"
	"restaurant-backend/internal/adapter/notifier/ultramsg"
	"restaurant-backend/internal/adapter/postgresql/order_repository"
	"restaurant-backend/internal/adapter/rabbitmq"
	"restaurant-backend/internal/adapter/rabbitmq/order_publisher"
	"restaurant-backend/internal/adapter/server"
	"restaurant-backend/internal/adapter/supabase"
	"restaurant-backend/internal/app/bootstrap"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/serivce/geocode"
	"restaurant-backend/internal/core/serivce/order"
	"restaurant-backend/pkg/logger"
	"syscall"
)

type OrderApp struct {
	api       *server.API
	repo      *order_repository.OrderRepository
	publisher *order_publisher.OrderPublisher
	ctx       context.Context
	cancel    context.CancelFunc
	logger    logger.Logger
}

func NewOrderApp() *OrderApp {
	cfg := bootstrap.MustConfig()
	log := bootstrap.Logger(cfg, "order-service")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	repo, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		cancel()
		os.Exit(1)
	}

	channels := order.Channels{
		SMS:      sms.NewSender(log.With("channel", "sms")),
		Mirror:   supabase.NewMirror(cfg.Supabase, cfg.Timeout, log.With("component", "supabase")),
		Email:    email.NewMailer(cfg.SMTP, log.With("channel", "email")),
		WhatsApp: ultramsg.NewClient(cfg.UltraMsg, cfg.Timeout, log.With("channel", "ultramsg")),
	}

	var publisher *order_publisher.OrderPublisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err = order_publisher.NewOrderPublisher(ctx, cfg.RabbitMQ, log.With("component", "rabbitmq"))
		if err != nil {
			log.Warn(ctx, types.ActionRabbitMQConnectFailed, "order events disabled", "reason", err.Error())
		} else {
			channels.Publisher = publisher
		}
	} else {
		log.Info(ctx, types.ActionServiceStarted, "order events disabled", "reason", rabbitmq.ErrNotConfigured.Error())
	}

	orderSvc := order.NewOrderService(repo, channels, cfg.SMS.OwnerNumber, log.With("component", "orders"))
	notifySvc := bootstrap.NotificationService(cfg, log.With("component", "notifications"))
	geoSvc := geocode.NewGeocodeService(bootstrap.Geocoder(cfg), log.With("component", "geocode"))

	api := server.NewRouter(log, server.Handlers{
		Order:        http.NewOrderHandle(orderSvc, log),
		Notification: http.NewNotificationHandle(notifySvc, log),
		Geocode:      http.NewGeocodeHandle(geoSvc, log),
	}, cfg.AllowOrigin, cfg.Port)

	return &OrderApp{
		api:       api,
		repo:      repo,
		publisher: publisher,
		ctx:       ctx,
		cancel:    cancel,
		logger:    log,
	}
}

// Start serves HTTP until SIGINT/SIGTERM, then releases the pool and broker connection.
func (app *OrderApp) Start() {
	defer app.cancel()

	err := app.api.Run(app.ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		app.logger.Error(app.ctx, types.ActionServiceFailed, "http server stopped", err)
	}

	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error(app.ctx, types.ActionGracefulShutdown, "error closing RabbitMQ connection", err)
		}
	}
	app.repo.Close()
	app.logger.Info(app.ctx, types.ActionGracefulShutdown, "service is shutting down")
}
