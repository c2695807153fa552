package executor

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/cubeclust/resource"
)

// Local is an Executor backed by a bounded pool of goroutines.
// With parallelism 1 it degenerates to strictly sequential execution, the
// memory-conservative mode.
type Local struct {
	acquire func(ctx context.Context) error
	release func()
	results chan Outcome
	shared  any
}

// NewLocal creates a local executor running at most parallelism tasks
// concurrently. parallelism < 1 is treated as 1.
func NewLocal(parallelism int) *Local {
	if parallelism < 1 {
		parallelism = 1
	}
	sem := semaphore.NewWeighted(int64(parallelism))
	return &Local{
		acquire: func(ctx context.Context) error { return sem.Acquire(ctx, 1) },
		release: func() { sem.Release(1) },
		results: make(chan Outcome),
	}
}

// NewLocalWithController creates a local executor whose concurrency is
// governed by the resource controller's run slots.
func NewLocalWithController(ctrl *resource.Controller) *Local {
	return &Local{
		acquire: ctrl.AcquireRun,
		release: ctrl.ReleaseRun,
		results: make(chan Outcome),
	}
}

// Broadcast stores the shared value. Locally this is a pointer copy; every
// task sees the same backing array.
func (l *Local) Broadcast(_ context.Context, value any) error {
	l.shared = value
	return nil
}

// Submit schedules the task on the pool. A worker abandons its result send
// when ctx is canceled, so workers never outlive a consumer that stopped
// draining.
func (l *Local) Submit(ctx context.Context, task Task) error {
	go func() {
		if err := l.acquire(ctx); err != nil {
			l.deliver(ctx, Outcome{Err: err})
			return
		}
		value, err := task(ctx, l.shared)
		// Free the slot before handing over the result so the next task can
		// start while the consumer is still processing this one.
		l.release()
		l.deliver(ctx, Outcome{Value: value, Err: err})
	}()
	return nil
}

func (l *Local) deliver(ctx context.Context, out Outcome) {
	select {
	case l.results <- out:
	case <-ctx.Done():
	}
}

// Next blocks until a task completes or ctx is canceled.
func (l *Local) Next(ctx context.Context) (Outcome, error) {
	select {
	case out := <-l.results:
		return out, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
