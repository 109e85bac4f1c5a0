package twilio

import (
	"context"
	"fmt"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

// MessageCreator is the slice of the Twilio REST API used here; *openapi.ApiService satisfies it.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// WhatsApp sends WhatsApp messages through Twilio.
type WhatsApp struct {
	cfg config.TwilioConfig
	api MessageCreator
	log logger.Logger
}

func NewWhatsApp(cfg config.TwilioConfig, timeout time.Duration, log logger.Logger) *WhatsApp {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	client.SetTimeout(timeout)
	return NewWhatsAppWithAPI(cfg, client.Api, log)
}

func NewWhatsAppWithAPI(cfg config.TwilioConfig, api MessageCreator, log logger.Logger) *WhatsApp {
	return &WhatsApp{cfg: cfg, api: api, log: log}
}

func (w *WhatsApp) credentialsSet() bool {
	return w.cfg.AccountSID != "" && w.cfg.AuthToken != "" && w.cfg.WhatsAppNumber != ""
}

// Configured requires the default recipient as well as the credentials.
func (w *WhatsApp) Configured() bool {
	return w.credentialsSet() && w.cfg.AdminPhone != ""
}

func (w *WhatsApp) SendWhatsApp(ctx context.Context, message, toNumber string) models.NotificationResult {
	recipient := toNumber
	if recipient == "" {
		recipient = w.cfg.AdminPhone
	}

	if !w.credentialsSet() {
		w.log.Error(ctx, types.ActionNotificationSkipped, "Twilio WhatsApp not configured", nil)
		return models.Failed(models.ChannelWhatsApp,
			"Twilio WhatsApp is not configured. Set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_WHATSAPP_NUMBER")
	}
	if recipient == "" {
		w.log.Error(ctx, types.ActionNotificationSkipped, "admin phone number not set", nil)
		return models.Failed(models.ChannelWhatsApp,
			"Admin phone number not configured. Set ADMIN_PHONE_NUMBER")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(withWhatsAppPrefix(recipient))
	params.SetFrom(withWhatsAppPrefix(w.cfg.WhatsAppNumber))
	params.SetBody(message)

	resp, err := w.api.CreateMessage(params)
	if err != nil {
		errMsg := fmt.Sprintf("Failed to send WhatsApp message: %v", err)
		w.log.Error(ctx, types.ActionNotificationFailed, "twilio request failed", err)
		return models.Failed(models.ChannelWhatsApp, errMsg)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	if resp != nil && resp.ErrorCode != nil {
		errMsg := fmt.Sprintf("Twilio error code %d", *resp.ErrorCode)
		w.log.Error(ctx, types.ActionNotificationFailed, "twilio rejected message", nil, "sid", sid, "error_code", *resp.ErrorCode)
		return models.Failed(models.ChannelWhatsApp, errMsg)
	}

	w.log.Info(ctx, types.ActionNotificationSent, "WhatsApp message sent", "sid", sid)
	return models.Sent(models.ChannelWhatsApp, sid)
}

func withWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, whatsappPrefix) {
		return number
	}
	return whatsappPrefix + number
}
