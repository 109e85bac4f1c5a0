package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
	"time"
	"unicode/utf8"
)

const (
	maxMessageLength = 1000
	maxTitleLength   = 100
)

type NotificationRequest struct {
	Message  string `json:"message"`
	Title    string `json:"title,omitempty"`
	ToNumber string `json:"to_number,omitempty"`
	FCMToken string `json:"fcm_token,omitempty"`
}

func (req NotificationRequest) validate() error {
	n := utf8.RuneCountInString(req.Message)
	if n < 1 || n > maxMessageLength {
		return fmt.Errorf("message must be 1-%d characters", maxMessageLength)
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTitleLength)
	}
	return nil
}

type healthResponse struct {
	Status             string          `json:"status"`
	ServicesConfigured map[string]bool `json:"services_configured"`
	Timestamp          time.Time       `json:"timestamp"`
}

type unifiedResponse struct {
	models.UnifiedNotificationOutcome
	Message string `json:"message"`
}

type whatsAppResponse struct {
	Success    bool      `json:"success"`
	Service    string    `json:"service"`
	MessageSID string    `json:"message_sid"`
	Timestamp  time.Time `json:"timestamp"`
}

type pushResponse struct {
	Success   bool                                 `json:"success"`
	Services  map[string]models.NotificationResult `json:"services"`
	Timestamp time.Time                            `json:"timestamp"`
}

type NotificationHandle struct {
	svc port.NotificationService
	log logger.Logger
	now func() time.Time
}

func NewNotificationHandle(svc port.NotificationService, log logger.Logger) *NotificationHandle {
	return &NotificationHandle{
		svc: svc,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Health reports which channels are configured. It never touches the network.
func (h *NotificationHandle) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configured := h.svc.ValidateConfig()

		status := "no_services_configured"
		for _, ok := range configured {
			if ok {
				status = "healthy"
				break
			}
		}

		writeJSON(r.Context(), h.log, w, http.StatusOK, healthResponse{
			Status:             status,
			ServicesConfigured: configured,
			Timestamp:          h.now(),
		})
	}
}

func (h *NotificationHandle) decode(ctx context.Context, w http.ResponseWriter, r *http.Request) (NotificationRequest, bool) {
	var req NotificationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, h.log, w, http.StatusUnprocessableEntity, "invalid request body")
		return req, false
	}
	if err := req.validate(); err != nil {
		h.log.Warn(ctx, types.ActionValidationFailed, "invalid notification request", "reason", err.Error())
		writeError(ctx, h.log, w, http.StatusUnprocessableEntity, err.Error())
		return req, false
	}
	return req, true
}

func (h *NotificationHandle) Notify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithoutCancel(r.Context())

		req, ok := h.decode(ctx, w, r)
		if !ok {
			return
		}

		outcome, err := h.svc.SendUnified(ctx, models.UnifiedRequest{
			Message:  req.Message,
			Title:    req.Title,
			ToNumber: req.ToNumber,
			FCMToken: req.FCMToken,
		})
		if err != nil {
			if errors.Is(err, models.ErrorNoChannelsConfigured) {
				writeError(ctx, h.log, w, http.StatusServiceUnavailable,
					"No notification services are configured. Set up Twilio WhatsApp, FCM, or Pushover credentials in .env")
				return
			}
			writeError(ctx, h.log, w, http.StatusInternalServerError, fmt.Sprintf("Notification error: %v", err))
			return
		}

		if !outcome.OverallSuccess {
			h.log.Warn(ctx, types.ActionNotificationFailed, "all notification services failed")
			writeError(ctx, h.log, w, http.StatusInternalServerError,
				"Failed to send notification through all configured services")
			return
		}

		writeJSON(ctx, h.log, w, http.StatusOK, unifiedResponse{
			UnifiedNotificationOutcome: outcome,
			Message:                    "Notification sent successfully",
		})
	}
}

func (h *NotificationHandle) WhatsApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithoutCancel(r.Context())

		req, ok := h.decode(ctx, w, r)
		if !ok {
			return
		}

		res := h.svc.SendWhatsApp(ctx, req.Message, req.ToNumber)
		if !res.Success {
			detail := res.Error
			if detail == "" {
				detail = "Failed to send WhatsApp message"
			}
			writeError(ctx, h.log, w, http.StatusInternalServerError, detail)
			return
		}

		writeJSON(ctx, h.log, w, http.StatusOK, whatsAppResponse{
			Success:    true,
			Service:    models.ChannelWhatsApp,
			MessageSID: res.MessageID,
			Timestamp:  h.now(),
		})
	}
}

func (h *NotificationHandle) Push() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithoutCancel(r.Context())

		req, ok := h.decode(ctx, w, r)
		if !ok {
			return
		}

		outcome := h.svc.SendPush(ctx, req.Title, req.Message, req.FCMToken)
		if !outcome.Success {
			writeError(ctx, h.log, w, http.StatusInternalServerError,
				"Failed to send push notification through all available services")
			return
		}

		writeJSON(ctx, h.log, w, http.StatusOK, pushResponse{
			Success:   true,
			Services:  outcome.Services,
			Timestamp: h.now(),
		})
	}
}
