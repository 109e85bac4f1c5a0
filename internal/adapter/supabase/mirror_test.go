package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/pkg/config"
	"restaurant-backend/pkg/logger"
)

func newTestMirror(url string) *Mirror {
	return NewMirror(config.SupabaseConfig{URL: url, APIKey: "anon"}, 2*time.Second, logger.Discard())
}

func TestMirrorOrder_ArrayResponse(t *testing.T) {
	var got insertPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":77,"name":"Alice","item":"Pizza","phone":"+1","status":"received","created_at":"2024-01-01T00:00:00Z"}]`))
	}))
	defer srv.Close()

	res := newTestMirror(srv.URL).MirrorOrder(context.Background(), models.OrderView{
		ID: 1, Name: "Alice", Item: "Pizza", Phone: "+1",
	})

	require.True(t, res.Success)
	assert.Equal(t, int64(77), res.Row.ID)
	assert.Equal(t, "Pizza", res.Row.Item)
	assert.Equal(t, insertPayload{Name: "Alice", Item: "Pizza", Phone: "+1", Status: "received"}, got)
}

func TestMirrorOrder_ObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"name":"Bob","item":"Burger","phone":"+2","status":"received"}`))
	}))
	defer srv.Close()

	res := newTestMirror(srv.URL).MirrorOrder(context.Background(), models.OrderView{Name: "Bob", Item: "Burger"})

	require.True(t, res.Success)
	assert.Equal(t, int64(5), res.Row.ID)
}

func TestMirrorOrder_Failures(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		res := newTestMirror("http://unused").MirrorOrder(context.Background(), models.OrderView{Name: "x"})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "required")
	})

	t.Run("not configured", func(t *testing.T) {
		m := NewMirror(config.SupabaseConfig{}, time.Second, logger.Discard())
		res := m.MirrorOrder(context.Background(), models.OrderView{Name: "a", Item: "b"})
		assert.False(t, res.Success)
		assert.Equal(t, "Supabase configuration missing", res.Error)
	})

	t.Run("upstream error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
		}))
		defer srv.Close()

		res := newTestMirror(srv.URL).MirrorOrder(context.Background(), models.OrderView{Name: "a", Item: "b"})
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "401")
		assert.Contains(t, res.Error, "Invalid API key")
	})

	t.Run("empty array", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		res := newTestMirror(srv.URL).MirrorOrder(context.Background(), models.OrderView{Name: "a", Item: "b"})
		assert.False(t, res.Success)
	})
}
