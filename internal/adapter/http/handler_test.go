package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/pkg/logger"
)

type fakeOrderService struct {
	resp   models.OrderResponse
	err    error
	orders []models.Order
	got    models.CreateOrder
}

func (f *fakeOrderService) CreateOrder(_ context.Context, o models.CreateOrder) (models.OrderResponse, error) {
	f.got = o
	return f.resp, f.err
}

func (f *fakeOrderService) ListOrders(context.Context, int) ([]models.Order, error) {
	return f.orders, f.err
}

type fakeNotificationService struct {
	outcome models.UnifiedNotificationOutcome
	err     error
	wa      models.NotificationResult
	push    models.PushOutcome
	config  map[string]bool
	called  bool
}

func (f *fakeNotificationService) SendUnified(context.Context, models.UnifiedRequest) (models.UnifiedNotificationOutcome, error) {
	f.called = true
	return f.outcome, f.err
}

func (f *fakeNotificationService) SendWhatsApp(context.Context, string, string) models.NotificationResult {
	f.called = true
	return f.wa
}

func (f *fakeNotificationService) SendPush(context.Context, string, string, string) models.PushOutcome {
	f.called = true
	return f.push
}

func (f *fakeNotificationService) ValidateConfig() map[string]bool { return f.config }

type fakeGeocodeService struct {
	address string
	err     error
}

func (f fakeGeocodeService) Resolve(context.Context, float64, float64) (string, error) {
	return f.address, f.err
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestCreateOrderHandler(t *testing.T) {
	svc := &fakeOrderService{resp: models.OrderResponse{ID: 7, Status: "created", Notification: "success"}}
	h := NewOrderHandle(svc, logger.Discard())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"name":"Alice","item":"Pizza","phone":"+1"}`))
	h.CreateOrder()(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":7,"status":"created","notification":"success"}`, rec.Body.String())
	assert.Equal(t, models.CreateOrder{Name: "Alice", Item: "Pizza", Phone: "+1"}, svc.got)
}

func TestCreateOrderHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "malformed json", body: `{`, status: http.StatusUnprocessableEntity},
		{name: "validation", body: `{}`, err: fmt.Errorf("%w: name must not be empty", models.ErrorValidationFailed), status: http.StatusUnprocessableEntity},
		{name: "db failure", body: `{"name":"a","item":"b","phone":"c"}`, err: models.ErrorDbTransactionFailed, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewOrderHandle(&fakeOrderService{err: tc.err}, logger.Discard())

			rec := httptest.NewRecorder()
			h.CreateOrder()(rec, httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, decodeDetail(t, rec))
		})
	}
}

func TestListOrdersHandler(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := &fakeOrderService{orders: []models.Order{
		{ID: 2, Name: "Bob", Item: "Burger", Phone: "+2", Status: "received", CreatedAt: &created},
		{ID: 1, Name: "Alice", Item: "Pizza", Phone: "+1", Status: "received"},
	}}
	h := NewOrderHandle(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.ListOrders()(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":2,"name":"Bob","item":"Burger","phone":"+2","status":"received","created_at":"2024-01-02T03:04:05Z"},
		{"id":1,"name":"Alice","item":"Pizza","phone":"+1","status":"received","created_at":null}
	]`, rec.Body.String())
}

func TestListOrdersHandler_Empty(t *testing.T) {
	h := NewOrderHandle(&fakeOrderService{}, logger.Discard())

	rec := httptest.NewRecorder()
	h.ListOrders()(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNotifyHealth(t *testing.T) {
	svc := &fakeNotificationService{config: map[string]bool{"whatsapp": false, "fcm": false, "pushover": false}}
	h := NewNotificationHandle(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.Health()(rec, httptest.NewRequest(http.MethodGet, "/notify/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "no_services_configured", body.Status)
	assert.False(t, body.Timestamp.IsZero())

	svc.config["fcm"] = true
	rec = httptest.NewRecorder()
	h.Health()(rec, httptest.NewRequest(http.MethodGet, "/notify/health", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
}

func TestNotify(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name       string
		body       string
		svc        *fakeNotificationService
		status     int
		wantCalled bool
	}{
		{
			name: "success",
			body: `{"message":"Order ready"}`,
			svc: &fakeNotificationService{outcome: models.UnifiedNotificationOutcome{
				OverallSuccess: true,
				Services:       map[string]models.NotificationResult{"fcm": models.Sent("fcm", "1")},
				Timestamp:      ts,
			}},
			status:     http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "no channels",
			body:       `{"message":"x"}`,
			svc:        &fakeNotificationService{err: models.ErrorNoChannelsConfigured},
			status:     http.StatusServiceUnavailable,
			wantCalled: true,
		},
		{
			name:       "all failed",
			body:       `{"message":"x"}`,
			svc:        &fakeNotificationService{outcome: models.UnifiedNotificationOutcome{}},
			status:     http.StatusInternalServerError,
			wantCalled: true,
		},
		{
			name:   "empty message",
			body:   `{"message":""}`,
			svc:    &fakeNotificationService{},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "message too long",
			body:   fmt.Sprintf(`{"message":%q}`, strings.Repeat("a", 1001)),
			svc:    &fakeNotificationService{},
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "title too long",
			body:   fmt.Sprintf(`{"message":"x","title":%q}`, strings.Repeat("t", 101)),
			svc:    &fakeNotificationService{},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewNotificationHandle(tc.svc, logger.Discard())

			rec := httptest.NewRecorder()
			h.Notify()(rec, httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(tc.body)))

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.wantCalled, tc.svc.called)
		})
	}
}

func TestNotify_SuccessBody(t *testing.T) {
	svc := &fakeNotificationService{outcome: models.UnifiedNotificationOutcome{
		OverallSuccess: true,
		Services:       map[string]models.NotificationResult{"whatsapp": models.Sent("whatsapp", "SM1")},
		Timestamp:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	h := NewNotificationHandle(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.Notify()(rec, httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(`{"message":"hi"}`)))

	assert.JSONEq(t, `{
		"overall_success": true,
		"services": {"whatsapp": {"success": true, "service": "whatsapp", "message_id": "SM1"}},
		"timestamp": "2024-01-01T00:00:00Z",
		"message": "Notification sent successfully"
	}`, rec.Body.String())
}

func TestNotifyWhatsApp(t *testing.T) {
	svc := &fakeNotificationService{wa: models.Sent("whatsapp", "SM9")}
	h := NewNotificationHandle(svc, logger.Discard())
	h.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.WhatsApp()(rec, httptest.NewRequest(http.MethodPost, "/notify/whatsapp", strings.NewReader(`{"message":"hi"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"service":"whatsapp","message_sid":"SM9","timestamp":"2024-01-01T00:00:00Z"}`, rec.Body.String())

	svc.wa = models.Failed("whatsapp", "Admin phone number not configured. Set ADMIN_PHONE_NUMBER")
	rec = httptest.NewRecorder()
	h.WhatsApp()(rec, httptest.NewRequest(http.MethodPost, "/notify/whatsapp", strings.NewReader(`{"message":"hi"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "ADMIN_PHONE_NUMBER")
}

func TestNotifyPush(t *testing.T) {
	svc := &fakeNotificationService{push: models.PushOutcome{
		Success:  true,
		Services: map[string]models.NotificationResult{"fcm": models.Sent("fcm", "m")},
	}}
	h := NewNotificationHandle(svc, logger.Discard())

	rec := httptest.NewRecorder()
	h.Push()(rec, httptest.NewRequest(http.MethodPost, "/notify/push", strings.NewReader(`{"message":"hi"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.push = models.PushOutcome{Services: map[string]models.NotificationResult{"fcm": models.Failed("fcm", "x")}}
	rec = httptest.NewRecorder()
	h.Push()(rec, httptest.NewRequest(http.MethodPost, "/notify/push", strings.NewReader(`{"message":"hi"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetAddress(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		svc    fakeGeocodeService
		status int
		detail string
	}{
		{name: "ok", query: "lat=51.5&lng=-0.12", svc: fakeGeocodeService{address: "London"}, status: http.StatusOK},
		{name: "bad lat", query: "lat=abc&lng=1", status: http.StatusUnprocessableEntity},
		{name: "missing lng", query: "lat=1", status: http.StatusUnprocessableEntity},
		{name: "not configured", query: "lat=1&lng=2", svc: fakeGeocodeService{err: models.ErrorGeocodingNotConfigured}, status: http.StatusInternalServerError, detail: "OpenCage API key not configured"},
		{name: "upstream", query: "lat=1&lng=2", svc: fakeGeocodeService{err: fmt.Errorf("%w: timeout", models.ErrorGeocodingUpstream)}, status: http.StatusBadGateway, detail: "failed to fetch address"},
		{name: "not found", query: "lat=1&lng=2", svc: fakeGeocodeService{err: models.ErrorAddressNotFound}, status: http.StatusNotFound, detail: "address not found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewGeocodeHandle(tc.svc, logger.Discard())

			rec := httptest.NewRecorder()
			h.GetAddress()(rec, httptest.NewRequest(http.MethodGet, "/get-address?"+tc.query, nil))

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.JSONEq(t, `{"address":"London"}`, rec.Body.String())
			}
			if tc.detail != "" {
				assert.Equal(t, tc.detail, decodeDetail(t, rec))
			}
		})
	}
}
