package plearn

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with plearn-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithWorkers adds a workers field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogIteration logs one completed learning iteration.
func (l *Logger) LogIteration(ctx context.Context, iter, niters int, duration time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iter,
		"total", niters,
		"duration", duration,
	)
}

// LogFit logs a completed learning call.
func (l *Logger) LogFit(ctx context.Context, iterations, facts, disjunctions int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fit completed",
			"iterations", iterations,
			"learnable_facts", facts,
			"learnable_disjunctions", disjunctions,
			"duration", duration,
		)
	}
}

// LogPublish logs the publish-back of converged parameters.
func (l *Logger) LogPublish(ctx context.Context, facts, disjunctions int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "publish failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "publish completed",
			"facts", facts,
			"disjunctions", disjunctions,
		)
	}
}
