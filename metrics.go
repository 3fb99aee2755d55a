package greenland

import (
	"sync/atomic"
	"time"

	"github.com/evz/greenland/enum"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEncode is called after the graph encoding phase.
	RecordEncode(vertices int, duration time.Duration, err error)

	// RecordEnumerate is called after each worker finishes its root
	// group. stats carries the frames explored and subsets emitted.
	RecordEnumerate(worker int, stats enum.Stats, duration time.Duration, err error)

	// RecordMerge is called after the merge phase with the total
	// record count of the merged stream.
	RecordMerge(records int64, duration time.Duration, err error)

	// RecordSelect is called after the selection phase.
	RecordSelect(k int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)                 {}
func (NoopMetricsCollector) RecordEnumerate(int, enum.Stats, time.Duration, error)  {}
func (NoopMetricsCollector) RecordMerge(int64, time.Duration, error)                {}
func (NoopMetricsCollector) RecordSelect(int, time.Duration, error)                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	WorkerCount      atomic.Int64
	WorkerErrors     atomic.Int64
	FramesExplored   atomic.Int64
	SubsetsEmitted   atomic.Int64
	EnumerateNanos   atomic.Int64
	MergedRecords    atomic.Int64
	MergeErrors      atomic.Int64
	SelectCount      atomic.Int64
	SelectErrors     atomic.Int64
	SelectTotalNanos atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(vertices int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordEnumerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnumerate(worker int, stats enum.Stats, duration time.Duration, err error) {
	b.WorkerCount.Add(1)
	b.FramesExplored.Add(stats.Frames)
	b.SubsetsEmitted.Add(stats.Emitted)
	b.EnumerateNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WorkerErrors.Add(1)
	}
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(records int64, duration time.Duration, err error) {
	b.MergedRecords.Store(records)
	if err != nil {
		b.MergeErrors.Add(1)
	}
}

// RecordSelect implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelect(k int, duration time.Duration, err error) {
	b.SelectCount.Add(1)
	b.SelectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:      b.EncodeCount.Load(),
		EncodeErrors:     b.EncodeErrors.Load(),
		WorkerCount:      b.WorkerCount.Load(),
		WorkerErrors:     b.WorkerErrors.Load(),
		FramesExplored:   b.FramesExplored.Load(),
		SubsetsEmitted:   b.SubsetsEmitted.Load(),
		EnumerateNanos:   b.EnumerateNanos.Load(),
		MergedRecords:    b.MergedRecords.Load(),
		MergeErrors:      b.MergeErrors.Load(),
		SelectCount:      b.SelectCount.Load(),
		SelectErrors:     b.SelectErrors.Load(),
		SelectTotalNanos: b.SelectTotalNanos.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount      int64
	EncodeErrors     int64
	WorkerCount      int64
	WorkerErrors     int64
	FramesExplored   int64
	SubsetsEmitted   int64
	EnumerateNanos   int64
	MergedRecords    int64
	MergeErrors      int64
	SelectCount      int64
	SelectErrors     int64
	SelectTotalNanos int64
}
