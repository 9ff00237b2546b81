package biasdetect

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific context.
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

// WithSamples adds a sample-count field to the logger.
func (l *Logger) WithSamples(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("samples", n),
	}
}

// WithFeatures adds a feature-count field to the logger.
func (l *Logger) WithFeatures(d int) *Logger {
	return &Logger{
		Logger: l.Logger.With("features", d),
	}
}

// WithClusters adds a cluster-count field to the logger.
func (l *Logger) WithClusters(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("clusters", k),
	}
}

// LogFit logs a fit operation.
func (l *Logger) LogFit(ctx context.Context, samples, features, clusters int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"samples", samples,
			"features", features,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fit completed",
			"samples", samples,
			"features", features,
			"clusters", clusters,
		)
	}
}

// LogSplit logs a split attempt on an open cluster.
func (l *Logger) LogSplit(ctx context.Context, label, size int, accepted bool) {
	l.DebugContext(ctx, "split attempted",
		"label", label,
		"size", size,
		"accepted", accepted,
	)
}

// LogPredict logs a predict operation.
func (l *Logger) LogPredict(ctx context.Context, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "predict failed",
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "predict completed",
			"rows", rows,
		)
	}
}

// LogSnapshot logs a snapshot save or load operation.
func (l *Logger) LogSnapshot(ctx context.Context, codecName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"codec", codecName,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"codec", codecName,
		)
	}
}
