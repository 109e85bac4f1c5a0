package pushover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"strings"
	"time"
)

// highPriority bypasses the recipient's quiet hours.
const highPriority = "1"

type Client struct {
	cfg  config.PushoverConfig
	http *http.Client
	log  logger.Logger
}

func NewClient(cfg config.PushoverConfig, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

func (c *Client) Configured() bool {
	return c.cfg.Enabled && c.cfg.APIToken != "" && c.cfg.UserKey != ""
}

// SendPush posts a high-priority message. The token argument is ignored; Pushover targets the configured user key.
func (c *Client) SendPush(ctx context.Context, title, body, _ string) models.NotificationResult {
	if !c.cfg.Enabled {
		return models.Failed(models.ChannelPushover, "Pushover is not enabled. Set USE_PUSHOVER=true")
	}
	if c.cfg.APIToken == "" || c.cfg.UserKey == "" {
		c.log.Warn(ctx, types.ActionNotificationSkipped, "Pushover credentials not set")
		return models.Failed(models.ChannelPushover,
			"Pushover credentials not configured. Set PUSHOVER_API_TOKEN and PUSHOVER_USER_KEY")
	}

	form := url.Values{}
	form.Set("token", c.cfg.APIToken)
	form.Set("user", c.cfg.UserKey)
	form.Set("title", title)
	form.Set("message", body)
	form.Set("priority", highPriority)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("Failed to send Pushover notification: %v", err), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, fmt.Sprintf("Failed to send Pushover notification: %v", err), err)
	}
	defer resp.Body.Close()

	// Pushover reports validation problems as 4xx with a JSON body, so decode before checking status.
	var result struct {
		Status  int      `json:"status"`
		Request string   `json:"request"`
		Receipt string   `json:"receipt"`
		Errors  []string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.fail(ctx, fmt.Sprintf("Failed to send Pushover notification: status %d", resp.StatusCode), err)
	}

	if result.Status != 1 {
		errMsg := "Unknown error"
		if len(result.Errors) > 0 {
			errMsg = result.Errors[0]
		}
		return c.fail(ctx, "Pushover error: "+errMsg, nil)
	}

	id := result.Receipt
	if id == "" {
		id = result.Request
	}
	c.log.Info(ctx, types.ActionNotificationSent, "Pushover notification sent", "receipt", id)
	return models.Sent(models.ChannelPushover, id)
}

func (c *Client) fail(ctx context.Context, errMsg string, err error) models.NotificationResult {
	c.log.Error(ctx, types.ActionNotificationFailed, "Pushover send failed", err, "detail", errMsg)
	return models.Failed(models.ChannelPushover, errMsg)
}
