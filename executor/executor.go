// Package executor abstracts how independent optimizer runs are executed.
//
// The orchestrator only needs three capabilities: share a large read-only
// value once, submit independent units of work that reference it, and await
// the next completed unit in completion order. A bounded local worker pool
// is provided; a distributed task scheduler can implement the same interface
// and slot in unchanged.
package executor

import "context"

// Task is one independent unit of work. shared resolves the value
// previously passed to Broadcast, so backends can distribute a large array
// once instead of once per task.
type Task func(ctx context.Context, shared any) (any, error)

// Outcome is a completed task's value or failure.
type Outcome struct {
	Value any
	Err   error
}

// Executor runs tasks and delivers outcomes in completion order.
type Executor interface {
	// Broadcast makes a read-only value available to every subsequently
	// submitted task. Called at most once per session, before any Submit.
	Broadcast(ctx context.Context, value any) error

	// Submit schedules a task for execution. It does not block on worker
	// availability.
	Submit(ctx context.Context, task Task) error

	// Next blocks until the next outstanding task completes. Callers must
	// invoke Next exactly once per submitted task.
	Next(ctx context.Context) (Outcome, error)
}
