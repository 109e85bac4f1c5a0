package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
)

func TestComposeOrderEmail(t *testing.T) {
	subject, body := composeOrderEmail(models.OrderView{
		ID:     42,
		Name:   "Alice",
		Item:   "Margherita Pizza",
		Phone:  "+15550001111",
		Status: "received",
	})

	assert.Equal(t, "New order: Margherita Pizza from Alice (id=42)", subject)
	assert.Equal(t,
		"Order ID: 42\nName: Alice\nItem: Margherita Pizza\nPhone: +15550001111\nStatus: received",
		body,
	)
}

func TestSendOrderEmail_MissingConfig(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "127.0.0.1", Port: 1}, logger.Discard())

	assert.False(t, m.Configured())
	res := m.SendOrderEmail(context.Background(), models.OrderView{ID: 1})
	assert.False(t, res.Success)
	assert.Equal(t, "SMTP configuration missing", res.Error)
}

func TestConfigured(t *testing.T) {
	m := NewMailer(config.SMTPConfig{
		AdminEmail: "owner@restaurant.test",
		Sender:     "bot@restaurant.test",
		Password:   "secret",
	}, logger.Discard())
	assert.True(t, m.Configured())
}
