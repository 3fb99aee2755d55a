package greenland

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/evz/greenland/enum"
)

// Logger wraps slog.Logger with job-specific context.
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

// WithWorker adds a worker ID field to the logger.
func (l *Logger) WithWorker(worker int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", worker),
	}
}

// LogEncode logs the graph encoding phase.
func (l *Logger) LogEncode(ctx context.Context, vertices int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"vertices", vertices,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"vertices", vertices,
		)
	}
}

// LogWorker logs one worker's enumeration pass.
func (l *Logger) LogWorker(ctx context.Context, worker, roots int, stats enum.Stats, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "enumeration failed",
			"worker", worker,
			"roots", roots,
			"frames", stats.Frames,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "enumeration completed",
			"worker", worker,
			"roots", roots,
			"frames", stats.Frames,
			"emitted", stats.Emitted,
			"duration", duration,
		)
	}
}

// LogMerge logs the merge phase.
func (l *Logger) LogMerge(ctx context.Context, records int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "merge failed",
			"records", records,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "merge completed",
			"records", records,
		)
	}
}

// LogSelect logs the selection phase.
func (l *Logger) LogSelect(ctx context.Context, k int, kept int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "selection failed",
			"k", k,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "selection completed",
			"k", k,
			"kept", kept,
		)
	}
}
