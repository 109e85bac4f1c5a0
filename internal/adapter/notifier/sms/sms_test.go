package sms

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant-backend/pkg/logger"
)

func TestSendSMS(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(logger.New(&buf, "sms", logger.LevelDebug))

	res := s.SendSMS(context.Background(), "+15550000000", "New order: Pizza from Alice")
	assert.True(t, res.Success)
	assert.Equal(t, "sms", res.Service)
	assert.Contains(t, buf.String(), "New order: Pizza from Alice")
}

func TestSendSMS_NoRecipient(t *testing.T) {
	s := NewSender(logger.Discard())

	res := s.SendSMS(context.Background(), "", "hello")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "SMS_OWNER_NUMBER")
}
