package biasdetect

import (
	"log/slog"

	"github.com/fholstege/unsupervised-bias-detection/codec"
)

type options struct {
	splitStrategy    SplitStrategy
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	seed             int64
}

// Option configures constructor behavior.
type Option func(*options)

// WithSplitStrategy configures the strategy used to bisect an open cluster.
//
// If nil is passed, the default seeded 2-means strategy is used. The engine
// holds a reference to the strategy; it never copies it.
func WithSplitStrategy(s SplitStrategy) Option {
	return func(o *options) {
		o.splitStrategy = s
	}
}

// WithRandomSeed configures the seed of the default 2-means split strategy.
// Two engines built with the same seed produce identical fits on identical
// inputs.
//
// Ignored when WithSplitStrategy is set.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// fit/predict operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		seed:             1,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
