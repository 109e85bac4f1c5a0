package sms

import (
	"context"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/logger"
)

// Sender is a placeholder SMS channel: it only writes the message to the log.
// Swap it for a provider client behind port.SMSSender when one is chosen.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) SendSMS(ctx context.Context, to, message string) models.NotificationResult {
	if to == "" {
		s.log.Warn(ctx, types.ActionNotificationSkipped, "sms owner number not configured")
		return models.Failed(models.ChannelSMS, "SMS owner number not configured. Set SMS_OWNER_NUMBER")
	}

	s.log.Info(ctx, types.ActionNotificationSent, "[SMS] message queued",
		"to", to,
		"msg", message,
	)
	return models.Sent(models.ChannelSMS, "")
}
