package server

import (
	"net/http"
	"restaurant-backend/internal/adapter/metrics"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/logger"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type responseWriterWrapper struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware tags the request with an id, recovers panics, logs and records metrics.
func (a *API) Middleware(name string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(requestIDHeader, requestID)

		rw := &responseWriterWrapper{ResponseWriter: w, status: http.StatusOK}

		a.log.Debug(ctx, types.ActionRequestReceived, "started",
			"method", r.Method,
			"URL", r.URL.Path,
			"host", r.Host,
		)

		defer func() {
			if rec := recover(); rec != nil {
				a.log.Error(ctx, types.ActionRequestPanicked, "panic while handling request", nil,
					"panic", rec,
					"URL", r.URL.Path,
				)
				if !rw.wroteHeader {
					rw.Header().Set("Content-Type", "application/json")
					rw.WriteHeader(http.StatusInternalServerError)
					_, _ = rw.Write([]byte(`{"detail":"internal server error"}`))
				}
			}

			duration := time.Since(startTime)
			metrics.HTTPRequestsTotal.WithLabelValues(name, r.Method, strconv.Itoa(rw.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(name, r.Method).Observe(duration.Seconds())

			a.log.Debug(ctx, types.ActionRequestReceived, "completed",
				"method", r.Method,
				"URL", r.URL.Path,
				"status", rw.status,
				"duration", duration,
			)
		}()

		next.ServeHTTP(rw, r)
	})
}
