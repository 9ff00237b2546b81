package biasdetect

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each fit operation.
	// clusters is the number of final clusters, duration is the total time
	// taken, err is nil if successful.
	RecordFit(clusters int, duration time.Duration, err error)

	// RecordSplit is called after each split attempt during fit.
	// accepted reports whether the split was materialized.
	RecordSplit(accepted bool, duration time.Duration)

	// RecordPredict is called after each predict operation.
	// rows is the number of input rows, duration is the time taken,
	// err is nil if successful.
	RecordPredict(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordSplit(bool, time.Duration)         {}
func (NoopMetricsCollector) RecordPredict(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount          atomic.Int64
	FitErrors         atomic.Int64
	FitTotalNanos     atomic.Int64
	SplitAttempts     atomic.Int64
	SplitAccepted     atomic.Int64
	PredictCount      atomic.Int64
	PredictErrors     atomic.Int64
	PredictTotalNanos atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(clusters int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(accepted bool, duration time.Duration) {
	b.SplitAttempts.Add(1)
	if accepted {
		b.SplitAccepted.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(rows int, duration time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PredictErrors.Add(1)
	}
}
