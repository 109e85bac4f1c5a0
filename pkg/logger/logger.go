package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger writes structured lines tagged with the service name and an action.
type Logger interface {
	Debug(ctx context.Context, action, msg string, args ...any)
	Info(ctx context.Context, action, msg string, args ...any)
	Warn(ctx context.Context, action, msg string, args ...any)
	Error(ctx context.Context, action, msg string, err error, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

type ctxKey struct{}

// InitLogger returns a JSON logger writing to stdout.
func InitLogger(service string, level Level) Logger {
	return New(os.Stdout, service, level)
}

func New(w io.Writer, service string, level Level) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(handler).With("service", service)}
}

// Discard drops every line. Used by tests.
func Discard() Logger {
	return New(io.Discard, "discard", LevelError+1)
}

// ParseLevel maps debug/info/warn/error to a level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// WithRequestID stores the request id so every line logged with ctx carries it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *slogLogger) Debug(ctx context.Context, action, msg string, args ...any) {
	s.log(ctx, LevelDebug, action, msg, args...)
}

func (s *slogLogger) Info(ctx context.Context, action, msg string, args ...any) {
	s.log(ctx, LevelInfo, action, msg, args...)
}

func (s *slogLogger) Warn(ctx context.Context, action, msg string, args ...any) {
	s.log(ctx, LevelWarn, action, msg, args...)
}

func (s *slogLogger) Error(ctx context.Context, action, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	s.log(ctx, LevelError, action, msg, args...)
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

func (s *slogLogger) log(ctx context.Context, level Level, action, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := make([]any, 0, len(args)+4)
	attrs = append(attrs, "action", action)
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	attrs = append(attrs, args...)
	s.l.Log(ctx, level, msg, attrs...)
}
