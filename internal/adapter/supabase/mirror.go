package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
	"strings"
	"time"
)

const ordersPath = "/rest/v1/orders"

// Mirror copies newly created orders into the Supabase orders table over PostgREST.
type Mirror struct {
	cfg  config.SupabaseConfig
	http *http.Client
	log  logger.Logger
}

func NewMirror(cfg config.SupabaseConfig, timeout time.Duration, log logger.Logger) *Mirror {
	return &Mirror{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

func (m *Mirror) Configured() bool {
	return m.cfg.URL != "" && m.cfg.APIKey != ""
}

type insertPayload struct {
	Name   string `json:"name"`
	Item   string `json:"item"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// MirrorOrder inserts the order and returns the row Supabase stored.
func (m *Mirror) MirrorOrder(ctx context.Context, order models.OrderView) models.MirrorResult {
	if !m.Configured() {
		return m.fail(ctx, "Supabase configuration missing", nil)
	}
	if strings.TrimSpace(order.Name) == "" || strings.TrimSpace(order.Item) == "" {
		return m.fail(ctx, "order name and item are required", nil)
	}

	status := order.Status
	if status == "" {
		status = models.StatusReceived
	}
	body, err := json.Marshal(insertPayload{
		Name:   order.Name,
		Item:   order.Item,
		Phone:  order.Phone,
		Status: status,
	})
	if err != nil {
		return m.fail(ctx, err.Error(), err)
	}

	endpoint := strings.TrimRight(m.cfg.URL, "/") + ordersPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return m.fail(ctx, err.Error(), err)
	}
	req.Header.Set("apikey", m.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := m.http.Do(req)
	if err != nil {
		return m.fail(ctx, fmt.Sprintf("supabase request failed: %v", err), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return m.fail(ctx, fmt.Sprintf("cannot read supabase response: %v", err), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return m.fail(ctx, fmt.Sprintf("supabase returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))), nil)
	}

	row, err := decodeRow(raw)
	if err != nil {
		return m.fail(ctx, fmt.Sprintf("invalid supabase response: %v", err), err)
	}

	m.log.Info(ctx, types.ActionMirrorSucceeded, "order mirrored to supabase", "supabase_id", row.ID)
	return models.MirrorResult{Success: true, Row: row}
}

// decodeRow accepts the PostgREST array representation as well as a single object.
func decodeRow(raw []byte) (models.OrderView, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return models.OrderView{}, fmt.Errorf("empty body")
	}

	if trimmed[0] == '[' {
		var rows []models.OrderView
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return models.OrderView{}, err
		}
		if len(rows) == 0 {
			return models.OrderView{}, fmt.Errorf("no row returned")
		}
		return rows[0], nil
	}

	var row models.OrderView
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return models.OrderView{}, err
	}
	return row, nil
}

func (m *Mirror) fail(ctx context.Context, errMsg string, err error) models.MirrorResult {
	m.log.Error(ctx, types.ActionMirrorFailed, "supabase mirror failed", err, "detail", errMsg)
	return models.MirrorResult{Success: false, Error: errMsg}
}
