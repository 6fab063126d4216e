// Package logging defines the structured-logging interface used across the
// project, with slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.uber.org/zap"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr, "mode", mode)
type Logger interface {
	// Debug logs verbose diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for New's format argument.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatZap  = "zap"
)

// New builds the logger selected by format, writing to w. The zap backend
// always writes to stderr through its production config.
func New(format string, w io.Writer) (Logger, error) {
	switch format {
	case "", FormatJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil))), nil
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil))), nil
	case FormatZap:
		z, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("zap init: %w", err)
		}
		return NewZapLogger(z), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
