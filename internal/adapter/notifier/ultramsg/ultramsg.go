package ultramsg

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
	"strings"
	"time"
)

// Client sends order alerts to the admin's WhatsApp through UltraMsg.
type Client struct {
	cfg  config.UltraMsgConfig
	http *http.Client
	log  logger.Logger
}

func NewClient(cfg config.UltraMsgConfig, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.Instance != "" && c.cfg.Token != "" && c.cfg.AdminNumber != ""
}

// SendOrderWhatsApp formats the order and sends it to the admin number.
func (c *Client) SendOrderWhatsApp(ctx context.Context, order models.OrderView) models.NotificationResult {
	return c.SendToAdmin(ctx, FormatOrder(order))
}

func (c *Client) SendToAdmin(ctx context.Context, message string) models.NotificationResult {
	if !c.Configured() {
		c.log.Warn(ctx, types.ActionNotificationSkipped, "UltraMsg configuration incomplete",
			"missing", c.missing(),
		)
		return models.Failed(models.ChannelUltraMsg, "UltraMsg configuration missing")
	}

	payload, err := json.Marshal(map[string]string{
		"token": c.cfg.Token,
		"to":    c.cfg.AdminNumber,
		"body":  message,
	})
	if err != nil {
		return c.fail(ctx, err.Error(), err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages/chat", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return c.fail(ctx, err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errMsg := fmt.Sprintf("ultramsg returned status %d", resp.StatusCode)
		return c.fail(ctx, errMsg, nil)
	}

	// UltraMsg answers {"sent":"true","message":"ok","id":9}
	var result struct {
		Sent    any    `json:"sent"`
		Message string `json:"message"`
		ID      any    `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return c.fail(ctx, fmt.Sprintf("invalid ultramsg response: %v", err), err)
	}

	if !isSent(result.Sent) {
		errMsg := result.Message
		if errMsg == "" {
			errMsg = "Failed to send message"
		}
		return c.fail(ctx, errMsg, nil)
	}

	id := "unknown"
	if result.ID != nil {
		id = fmt.Sprint(result.ID)
	}
	c.log.Info(ctx, types.ActionNotificationSent, "WhatsApp message sent to admin via UltraMsg", "message_id", id)
	return models.Sent(models.ChannelUltraMsg, id)
}

func (c *Client) fail(ctx context.Context, errMsg string, err error) models.NotificationResult {
	c.log.Error(ctx, types.ActionNotificationFailed, "UltraMsg send failed", err, "detail", errMsg)
	return models.Failed(models.ChannelUltraMsg, errMsg)
}

func (c *Client) missing() []string {
	var missing []string
	if c.cfg.Instance == "" {
		missing = append(missing, "ULTRA_INSTANCE")
	}
	if c.cfg.Token == "" {
		missing = append(missing, "ULTRA_TOKEN")
	}
	if c.cfg.AdminNumber == "" {
		missing = append(missing, "ADMIN_NUMBER")
	}
	return missing
}

func isSent(v any) bool {
	switch sent := v.(type) {
	case bool:
		return sent
	case string:
		return sent == "true"
	default:
		return false
	}
}

// FormatOrder renders the admin alert text.
func FormatOrder(order models.OrderView) string {
	return "New Order Received\n" +
		"\n" +
		fmt.Sprintf("Customer: %s\n", order.Name) +
		fmt.Sprintf("Phone: %s\n", order.Phone) +
		fmt.Sprintf("Order ID: %d\n", order.ID) +
		"\n" +
		"Order Items:\n" +
		fmt.Sprintf("- %s\n", order.Item) +
		"\n" +
		"Please prepare the order"
}
