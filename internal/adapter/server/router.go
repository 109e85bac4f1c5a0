package server

import (
	"context"
	"errors"
	"net/http"
	httpHandle "restaurant-backend/internal/adapter/http"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/logger"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	Order        *httpHandle.OrderHandle
	Notification *httpHandle.NotificationHandle
	Geocode      *httpHandle.GeocodeHandle
}

type API struct {
	mux      *http.ServeMux
	log      logger.Logger
	handlers Handlers
	origins  []string
	port     int
}

func NewRouter(log logger.Logger, handlers Handlers, allowOrigins []string, port int) *API {
	api := &API{
		mux:      http.NewServeMux(),
		log:      log,
		handlers: handlers,
		origins:  allowOrigins,
		port:     port,
	}
	api.routes()
	return api
}

func (api *API) routes() {
	api.mux.Handle("POST /order", api.Middleware("create_order", api.handlers.Order.CreateOrder()))
	api.mux.Handle("GET /orders", api.Middleware("list_orders", api.handlers.Order.ListOrders()))
	api.mux.Handle("GET /get-address", api.Middleware("get_address", api.handlers.Geocode.GetAddress()))

	api.mux.Handle("GET /notify/health", api.Middleware("notify_health", api.handlers.Notification.Health()))
	api.mux.Handle("POST /notify", api.Middleware("notify", api.handlers.Notification.Notify()))
	api.mux.Handle("POST /notify/{$}", api.Middleware("notify", api.handlers.Notification.Notify()))
	api.mux.Handle("POST /notify/whatsapp", api.Middleware("notify_whatsapp", api.handlers.Notification.WhatsApp()))
	api.mux.Handle("POST /notify/push", api.Middleware("notify_push", api.handlers.Notification.Push()))

	api.mux.Handle("GET /health", api.Middleware("health", health()))
	api.mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the mux wrapped with CORS.
func (api *API) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   api.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(api.mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (api *API) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(api.port),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		api.log.Info(ctx, types.ActionServiceStarted, "http server listening", "port", api.port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			api.log.Error(ctx, types.ActionServiceFailed, "error running http server", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	api.log.Info(ctx, types.ActionGracefulShutdown, "shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}
}
