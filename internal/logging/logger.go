// Package logging provides structured logging configuration using log/slog.
//
// Logs are written to stderr so they never interleave with the menu text the
// console writes to stdout. Session attributes are carried on the context so
// every entry produced while a user is logged in can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type attrsKey struct{}

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New builds a logger writing to w. Tests use it with a buffer.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithAttrs returns a context whose logger carries the given key/value pairs
// in addition to any already attached.
//
// Usage:
//
//	ctx = logging.WithAttrs(ctx, "session_id", sess.ID, "user_id", sess.UserID)
//	logging.FromContext(ctx).Info("order placed", "order", n)
func WithAttrs(ctx context.Context, args ...any) context.Context {
	prev, _ := ctx.Value(attrsKey{}).([]any)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// FromContext returns the default logger enriched with the context's attributes.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if args, ok := ctx.Value(attrsKey{}).([]any); ok && len(args) > 0 {
		logger = logger.With(args...)
	}
	return logger
}
