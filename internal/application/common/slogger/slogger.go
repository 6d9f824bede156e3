// Package slogger is a thin structured-logging facade over log/slog with
// the Fields map convention used throughout the services.
package slogger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fields carries structured log attributes.
type Fields map[string]any

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
)

// Configure replaces the global logger with one honoring the given level
// and format ("json" or "text").
func Configure(level, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	mu.Lock()
	logger = slog.New(handler)
	mu.Unlock()
}

// SetLogger replaces the global logger, useful for tests.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func attrs(fields Fields) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

// Debug logs a debug message with context.
func Debug(ctx context.Context, msg string, fields Fields) {
	current().DebugContext(ctx, msg, attrs(fields)...)
}

// Info logs an info message with context.
func Info(ctx context.Context, msg string, fields Fields) {
	current().InfoContext(ctx, msg, attrs(fields)...)
}

// Warn logs a warning message with context.
func Warn(ctx context.Context, msg string, fields Fields) {
	current().WarnContext(ctx, msg, attrs(fields)...)
}

// Error logs an error message with context.
func Error(ctx context.Context, msg string, fields Fields) {
	current().ErrorContext(ctx, msg, attrs(fields)...)
}

// ErrorWithError logs an error message with an error object.
func ErrorWithError(ctx context.Context, err error, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	fields["error"] = err
	Error(ctx, msg, fields)
}

// Field creates a single-field Fields map.
func Field(key string, value any) Fields {
	return Fields{key: value}
}

// Fields2 creates a Fields map with two key-value pairs.
func Fields2(k1 string, v1 any, k2 string, v2 any) Fields {
	return Fields{k1: v1, k2: v2}
}

// Fields3 creates a Fields map with three key-value pairs.
func Fields3(k1 string, v1 any, k2 string, v2 any, k3 string, v3 any) Fields {
	return Fields{k1: v1, k2: v2, k3: v3}
}
