package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"time"
)

// Client sends push notifications through the FCM legacy HTTP endpoint.
type Client struct {
	cfg  config.FCMConfig
	http *http.Client
	log  logger.Logger
}

func NewClient(cfg config.FCMConfig, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.ProjectID != "" && c.cfg.AdminToken != ""
}

type notification struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ClickAction string `json:"click_action"`
}

type request struct {
	To           string            `json:"to"`
	Notification notification      `json:"notification"`
	Data         map[string]string `json:"data"`
}

type response struct {
	Success   any    `json:"success"`
	MessageID any    `json:"message_id"`
	Error     string `json:"error"`
	Results   []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// SendPush delivers title/body to token, falling back to the admin device token.
func (c *Client) SendPush(ctx context.Context, title, body, token string) models.NotificationResult {
	recipient := token
	if recipient == "" {
		recipient = c.cfg.AdminToken
	}

	if c.cfg.APIKey == "" {
		c.log.Warn(ctx, types.ActionNotificationSkipped, "FCM API key not configured")
		return models.Failed(models.ChannelFCM, "FCM API key not configured. Set FCM_API_KEY")
	}
	if recipient == "" {
		c.log.Warn(ctx, types.ActionNotificationSkipped, "admin FCM token not set")
		return models.Failed(models.ChannelFCM, "Admin FCM token not configured. Set ADMIN_FCM_TOKEN")
	}

	payload, err := json.Marshal(request{
		To: recipient,
		Notification: notification{
			Title:       title,
			Body:        body,
			ClickAction: "FLUTTER_NOTIFICATION_CLICK",
		},
		Data: map[string]string{"priority": "high"},
	})
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("Unexpected error sending FCM notification: %v", err), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("Failed to send FCM notification: %v", err), err)
	}
	req.Header.Set("Authorization", "key="+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("Failed to send FCM notification: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(ctx, fmt.Sprintf("Failed to send FCM notification: status %d", resp.StatusCode), nil)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.fail(ctx, fmt.Sprintf("Unexpected error sending FCM notification: %v", err), err)
	}

	if !truthy(result.Success) {
		errMsg := result.Error
		if errMsg == "" && len(result.Results) > 0 {
			errMsg = result.Results[0].Error
		}
		if errMsg == "" {
			errMsg = "Unknown error"
		}
		return c.fail(ctx, "FCM error: "+errMsg, nil)
	}

	messageID := ""
	if result.MessageID != nil {
		messageID = fmt.Sprint(result.MessageID)
	} else if len(result.Results) > 0 {
		messageID = result.Results[0].MessageID
	}

	c.log.Info(ctx, types.ActionNotificationSent, "FCM notification sent", "message_id", messageID)
	return models.Sent(models.ChannelFCM, messageID)
}

func (c *Client) fail(ctx context.Context, errMsg string, err error) models.NotificationResult {
	c.log.Error(ctx, types.ActionNotificationFailed, "FCM send failed", err, "detail", errMsg)
	return models.Failed(models.ChannelFCM, errMsg)
}

// truthy accepts a success count or a boolean flag.
func truthy(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case float64:
		return s != 0
	case string:
		return s != "" && s != "0" && s != "false"
	default:
		return false
	}
}
