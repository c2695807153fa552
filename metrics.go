package cubeclust

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives counters from a clustering session. Implementations
// must be safe for concurrent use.
type MetricsCollector interface {
	// RecordRun is called once per finished optimizer run.
	RecordRun(duration time.Duration, converged bool, err error)

	// RecordSnapshot is called once per snapshot write attempt.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetrics discards all metrics.
type NoopMetrics struct{}

func (NoopMetrics) RecordRun(time.Duration, bool, error) {}
func (NoopMetrics) RecordSnapshot(time.Duration, error)  {}

// BasicMetrics counts runs and snapshots with atomic counters.
type BasicMetrics struct {
	RunsTotal      atomic.Int64
	RunsConverged  atomic.Int64
	RunsFailed     atomic.Int64
	RunNanos       atomic.Int64
	SnapshotsTotal atomic.Int64
	SnapshotsErr   atomic.Int64
	SnapshotNanos  atomic.Int64
}

func (m *BasicMetrics) RecordRun(d time.Duration, converged bool, err error) {
	m.RunsTotal.Add(1)
	m.RunNanos.Add(int64(d))
	if err != nil {
		m.RunsFailed.Add(1)
		return
	}
	if converged {
		m.RunsConverged.Add(1)
	}
}

func (m *BasicMetrics) RecordSnapshot(d time.Duration, err error) {
	m.SnapshotsTotal.Add(1)
	m.SnapshotNanos.Add(int64(d))
	if err != nil {
		m.SnapshotsErr.Add(1)
	}
}
