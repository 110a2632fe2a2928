package goserializer

import (
	"context"
	"log/slog"

	"github.com/reoring/goserializer/internal/logging"
)

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
	_ctxKeyLogger
)

// WithFailFast returns a child context that marks fail-fast validation.
// Schema implementations consult it so nested schemas inherit the intent.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current run should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, _ctxKeyLogger, l)
}

// LoggerFrom returns the logger attached to ctx, or a discarding logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(_ctxKeyLogger).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return logging.NewNop()
}
