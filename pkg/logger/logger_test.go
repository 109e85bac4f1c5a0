package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesActionAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "order", LevelDebug)

	ctx := WithRequestID(context.Background(), "req-1")
	log.Error(ctx, "db_query_failed", "insert failed", errors.New("boom"), "order_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order", line["service"])
	assert.Equal(t, "db_query_failed", line["action"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "insert failed", line["msg"])
	assert.EqualValues(t, 7, line["order_id"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "order", LevelInfo)

	log.Debug(context.Background(), "noise", "hidden")
	assert.Zero(t, buf.Len())

	log.Info(context.Background(), "service_started", "visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"WARN":    LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
