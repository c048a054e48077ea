package adview

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with adview-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithSource adds a source field to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogOpen logs opening a container.
func (l *Logger) LogOpen(ctx context.Context, source string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"source", source,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "opened",
			"source", source,
		)
	}
}

// LogStage logs staging a remote blob to a local file.
func (l *Logger) LogStage(ctx context.Context, source string, bytes int64, temp bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "stage failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "staged",
			"source", source,
			"bytes", bytes,
			"temp", temp,
		)
	}
}

// LogCatalog logs building the catalog of a table group.
func (l *Logger) LogCatalog(ctx context.Context, table string, fields, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "catalog failed",
			"table", table,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "catalog built",
			"table", table,
			"fields", fields,
			"rows", rows,
		)
	}
}

// LogRead logs a row read.
func (l *Logger) LogRead(ctx context.Context, table string, start, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"table", table,
			"start", start,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "read completed",
			"table", table,
			"start", start,
			"rows", rows,
		)
	}
}
