package plearn

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordFit is called after each learning call.
	// iterations is the number of iterations completed, duration is the
	// total time taken, err is nil if successful.
	RecordFit(iterations int, duration time.Duration, err error)

	// RecordIteration is called after each learning iteration.
	RecordIteration(duration time.Duration)

	// RecordSolve is called after each solver invocation (one per worker
	// per iteration). err is nil if successful.
	RecordSolve(duration time.Duration, err error)

	// RecordPublish is called after publishing converged parameters.
	// entries is the number of parameters written, err is nil if successful.
	RecordPublish(entries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFit(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordIteration(time.Duration)           {}
func (NoopMetricsCollector) RecordSolve(time.Duration, error)        {}
func (NoopMetricsCollector) RecordPublish(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FitCount            atomic.Int64
	FitErrors           atomic.Int64
	FitTotalNanos       atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	SolveCount          atomic.Int64
	SolveErrors         atomic.Int64
	SolveTotalNanos     atomic.Int64
	PublishCount        atomic.Int64
	PublishErrors       atomic.Int64
	PublishEntries      atomic.Int64
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(iterations int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordPublish implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPublish(entries int, duration time.Duration, err error) {
	b.PublishCount.Add(1)
	b.PublishEntries.Add(int64(entries))
	if err != nil {
		b.PublishErrors.Add(1)
	}
}

// BasicMetricsStats is a snapshot of collected metrics.
type BasicMetricsStats struct {
	FitCount           int64
	FitErrors          int64
	FitAvgNanos        int64
	IterationCount     int64
	IterationAvgNanos  int64
	SolveCount         int64
	SolveErrors        int64
	SolveAvgNanos      int64
	PublishCount       int64
	PublishErrors      int64
	PublishEntriesSeen int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FitCount:           b.FitCount.Load(),
		FitErrors:          b.FitErrors.Load(),
		FitAvgNanos:        avg(b.FitTotalNanos.Load(), b.FitCount.Load()),
		IterationCount:     b.IterationCount.Load(),
		IterationAvgNanos:  avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		SolveCount:         b.SolveCount.Load(),
		SolveErrors:        b.SolveErrors.Load(),
		SolveAvgNanos:      avg(b.SolveTotalNanos.Load(), b.SolveCount.Load()),
		PublishCount:       b.PublishCount.Load(),
		PublishErrors:      b.PublishErrors.Load(),
		PublishEntriesSeen: b.PublishEntries.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
