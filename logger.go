package cubeclust

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with cubeclust-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRun adds a run index field to the logger.
func (l *Logger) WithRun(run int) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// LogRun logs the outcome of one optimizer run.
func (l *Logger) LogRun(ctx context.Context, run int, converged bool, iterations int, errValue float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"run", run,
			"error", err,
		)
		return
	}
	if converged {
		l.InfoContext(ctx, "run converged",
			"run", run,
			"iterations", iterations,
			"error_value", errValue,
		)
	} else {
		l.WarnContext(ctx, "run not converged",
			"run", run,
			"iterations", iterations,
			"error_value", errValue,
		)
	}
}

// LogSnapshot logs a snapshot write.
func (l *Logger) LogSnapshot(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
		)
	}
}

// LogBest logs a new best-so-far result.
func (l *Logger) LogBest(ctx context.Context, run int, errValue float64) {
	l.InfoContext(ctx, "new best result",
		"run", run,
		"error_value", errValue,
	)
}
