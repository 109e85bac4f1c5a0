// Package bootstrap builds the pieces shared by every run mode.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"restaurant-backend/internal/adapter/geocoding"
	"restaurant-backend/internal/adapter/metrics"
	"restaurant-backend/internal/adapter/notifier/fcm"
	"restaurant-backend/internal/adapter/notifier/pushover"
	"restaurant-backend/internal/adapter/notifier/twilio"
	"restaurant-backend/internal/adapter/postgresql"
	"restaurant-backend/internal/adapter/postgresql/order_repository"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/serivce/notification"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/flags"
	"restaurant-backend/pkg/logger"
)

// MustConfig loads configuration or exits with the env help text.
func MustConfig() config.Config {
	cfg, err := config.Load(*flags.EnvFile)
	if err != nil {
		config.PrintEnvHelp()
		slog.Error("failed to configure application", "error", err)
		os.Exit(1)
	}
	if *flags.Port != 0 {
		cfg.Port = *flags.Port
	}
	metrics.Register()
	return cfg
}

func Logger(cfg config.Config, service string) logger.Logger {
	return logger.InitLogger(service, logger.ParseLevel(cfg.LogLevel)).With("env", cfg.Env)
}

// OpenStore connects to Postgres, applies migrations when enabled and returns the repository.
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger) (*order_repository.OrderRepository, error) {
	if cfg.AutoMigrate && *flags.Migrate {
		if err := postgresql.MigrateUp(cfg.DatabaseURL); err != nil {
			log.Error(ctx, types.ActionDBConnectFailed, "failed to migrate database", err)
			return nil, err
		}
		log.Info(ctx, types.ActionDBMigrated, "database schema is up to date")
	}

	pool, err := postgresql.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, types.ActionDBConnectFailed, "failed to connect to database", err)
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Info(ctx, types.ActionDBConnected, "connected to database")

	return order_repository.NewOrderRepository(pool), nil
}

// NotificationService wires the Twilio, FCM and Pushover channels into the fan-out.
func NotificationService(cfg config.Config, log logger.Logger) *notification.Service {
	return notification.NewNotificationService(
		twilio.NewWhatsApp(cfg.Twilio, cfg.Timeout, log.With("channel", "whatsapp")),
		fcm.NewClient(cfg.FCM, cfg.Timeout, log.With("channel", "fcm")),
		pushover.NewClient(cfg.Pushover, cfg.Timeout, log.With("channel", "pushover")),
		log,
	)
}

func Geocoder(cfg config.Config) *geocoding.OpenCage {
	return geocoding.NewOpenCage(cfg.OpenCage, cfg.Timeout)
}
