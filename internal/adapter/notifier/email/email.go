package email

import (
	"context"
	"fmt"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"strings"

	"github.com/wneessen/go-mail"
)

const subjectPrefix = "New order"

// Mailer delivers order notifications to the admin mailbox over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
	log logger.Logger
}

func NewMailer(cfg config.SMTPConfig, log logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

func (m *Mailer) Configured() bool {
	return m.cfg.AdminEmail != "" && m.cfg.Password != "" && m.cfg.Sender != ""
}

func (m *Mailer) SendOrderEmail(ctx context.Context, row models.OrderView) models.NotificationResult {
	if !m.Configured() {
		m.log.Warn(ctx, types.ActionNotificationSkipped, "SMTP configuration missing (ADMIN_EMAIL / EMAIL_PASSWORD / SENDER_EMAIL)")
		return models.Failed(models.ChannelEmail, "SMTP configuration missing")
	}

	subject, body := composeOrderEmail(row)

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return m.fail(ctx, row, fmt.Errorf("invalid sender address: %w", err))
	}
	if err := msg.To(m.cfg.AdminEmail); err != nil {
		return m.fail(ctx, row, fmt.Errorf("invalid admin address: %w", err))
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Sender),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return m.fail(ctx, row, fmt.Errorf("cannot create smtp client: %w", err))
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return m.fail(ctx, row, err)
	}

	m.log.Info(ctx, types.ActionNotificationSent, "order notification email sent",
		"to", m.cfg.AdminEmail,
		"order_id", row.ID,
	)
	return models.Sent(models.ChannelEmail, "")
}

func (m *Mailer) fail(ctx context.Context, row models.OrderView, err error) models.NotificationResult {
	m.log.Error(ctx, types.ActionNotificationFailed, "failed to send email via SMTP", err, "order_id", row.ID)
	return models.Failed(models.ChannelEmail, err.Error())
}

func composeOrderEmail(row models.OrderView) (string, string) {
	subject := fmt.Sprintf("%s: %s from %s (id=%d)", subjectPrefix, row.Item, row.Name, row.ID)
	body := strings.Join([]string{
		fmt.Sprintf("Order ID: %d", row.ID),
		fmt.Sprintf("Name: %s", row.Name),
		fmt.Sprintf("Item: %s", row.Item),
		fmt.Sprintf("Phone: %s", row.Phone),
		fmt.Sprintf("Status: %s", row.Status),
	}, "\n")
	return subject, body
}
