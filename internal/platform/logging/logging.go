// Package logging builds the service's slog loggers and carries them
// through request contexts.
//
//	logger := logging.New("info", "json", os.Stderr)
//	ctx = logging.WithLogger(ctx, logger.With(slog.String("request_id", id)))
//	logging.FromContext(ctx).InfoContext(ctx, "dialog opened")
//
// Errors are logged with the operation, the identifiers involved and the
// whole chain:
//
//	logger.ErrorContext(ctx, "task submission faulted",
//	    slog.String("operation", "Dialog.Submit"),
//	    slog.String("dialog_id", id),
//	    slog.Any("error", err),
//	)
//
// Every logger from New redacts credentials and clips user-entered task
// text; see redact.go.
package logging

import (
	"context"
	"io"
	"log/slog"
)

type contextKey struct{}

// New creates a logger writing to w.
//
// level is one of debug, info, warn or error in any case, optionally with an
// offset such as "warn+2"; anything else means info. format "text" selects
// the text handler and any other value JSON. Debug loggers include the
// source location.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: replaceAttr(),
	}

	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel parses a level name the way slog does, falling back to info.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
