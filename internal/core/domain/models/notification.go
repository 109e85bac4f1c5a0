package models

import "time"

const (
	ChannelSMS      = "sms"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelUltraMsg = "ultramsg"
	ChannelFCM      = "fcm"
	ChannelPushover = "pushover"
)

const DefaultNotificationTitle = "Restaurant Admin"

// NotificationResult is the uniform outcome of a single channel attempt.
type NotificationResult struct {
	Success   bool   `json:"success"`
	Service   string `json:"service,omitempty"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func Sent(service, messageID string) NotificationResult {
	return NotificationResult{Success: true, Service: service, MessageID: messageID}
}

func Failed(service, errMsg string) NotificationResult {
	return NotificationResult{Success: false, Service: service, Error: errMsg}
}

type UnifiedRequest struct {
	Message  string
	Title    string
	ToNumber string
	FCMToken string
}

type UnifiedNotificationOutcome struct {
	OverallSuccess bool                          `json:"overall_success"`
	Services       map[string]NotificationResult `json:"services"`
	Timestamp      time.Time                     `json:"timestamp"`
}

type PushOutcome struct {
	Success  bool                          `json:"success"`
	Services map[string]NotificationResult `json:"services"`
}
