// Package resource bounds what a clustering session may consume: concurrent
// optimizer runs, resident working-set memory, and snapshot IO throughput.
//
// The memory-conservative mode of the orchestrator is expressed here as
// MaxConcurrentRuns = 1: peak memory is then one run's working set.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentRuns is the maximum number of optimizer runs in flight.
	// If 0, defaults to 1.
	MaxConcurrentRuns int64

	// SnapshotIOBytesPerSec is the maximum throughput for snapshot writes.
	// If 0, unlimited.
	SnapshotIOBytesPerSec int64
}

// Controller manages session resources. A nil *Controller is valid and
// enforces nothing.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Run concurrency
	runSem *semaphore.Weighted

	// Snapshot IO
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentRuns <= 0 {
		cfg.MaxConcurrentRuns = 1
	}

	c := &Controller{
		cfg:    cfg,
		runSem: semaphore.NewWeighted(cfg.MaxConcurrentRuns),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.SnapshotIOBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.SnapshotIOBytesPerSec), int(cfg.SnapshotIOBytesPerSec))
	}

	return c
}

// AcquireMemory attempts to reserve memory for a run's working set.
// If a hard limit is configured and usage would exceed it, this blocks until
// memory is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently reserved memory in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireRun reserves an optimizer-run slot, blocking while all slots are
// busy. A nil controller admits everything.
func (c *Controller) AcquireRun(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.runSem.Acquire(ctx, 1)
}

// ReleaseRun releases an optimizer-run slot.
func (c *Controller) ReleaseRun() {
	if c == nil {
		return
	}
	c.runSem.Release(1)
}

// AcquireIO waits until the snapshot IO limit allows the given number of
// bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, bytes)
}
