package cubeclust

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/cubeclust/internal/altmin"
	"github.com/hupe1980/cubeclust/snapshot"
)

// runOutcome pairs a finished optimizer run with its index.
type runOutcome struct {
	run int
	res altmin.Result
}

// runFunc executes one optimizer run against the broadcast data.
type runFunc func(ctx context.Context, run int, rng *rand.Rand, shared any) (altmin.Result, error)

// runSession drives a best-of-N session: submit every run, drain outcomes in
// completion order, keep the strictly lowest error, and persist snapshots as
// the best improves. A failed run is logged and skipped; it never aborts the
// session.
func runSession(ctx context.Context, o options, p sessionParams, data any, run runFunc) (*Results, error) {
	exec := o.executor()
	if err := exec.Broadcast(ctx, data); err != nil {
		return nil, err
	}

	seedBase := o.seed
	if !o.hasSeed {
		seedBase = time.Now().UnixNano()
	}

	for i := 0; i < p.nRuns; i++ {
		i := i
		task := func(ctx context.Context, shared any) (any, error) {
			rng := rand.New(rand.NewSource(seedBase + int64(i)))
			start := time.Now()
			res, err := run(ctx, i, rng, shared)
			o.metrics.RecordRun(time.Since(start), res.Converged, err)
			if err != nil {
				// The outcome value still carries the run index so the
				// consumer can log which run failed.
				return runOutcome{run: i}, fmt.Errorf("run %d: %w", i, err)
			}
			return runOutcome{run: i, res: res}, nil
		}
		if err := exec.Submit(ctx, task); err != nil {
			return nil, err
		}
	}

	best := newResults()

	// Single consumer: best-so-far updates and snapshot writes are serialized
	// here, never inside the workers.
	for i := 0; i < p.nRuns; i++ {
		out, err := exec.Next(ctx)
		if err != nil {
			return nil, err
		}
		if out.Err != nil {
			best.NRunsFailed++
			failedRun := -1 // unknown for executor-level failures
			if oc, ok := out.Value.(runOutcome); ok {
				failedRun = oc.run
			}
			o.logger.LogRun(ctx, failedRun, false, 0, 0, out.Err)
			continue
		}

		oc := out.Value.(runOutcome)
		best.NRunsCompleted++
		if oc.res.Converged {
			best.NRunsConverged++
		}
		o.logger.LogRun(ctx, oc.run, oc.res.Converged, oc.res.Iterations, oc.res.Error, nil)

		if oc.res.Error < best.Error {
			best.Converged = oc.res.Converged
			best.Iterations = oc.res.Iterations
			best.BandClusters = oc.res.BandClusters
			best.RowClusters = oc.res.RowClusters
			best.ColClusters = oc.res.ColClusters
			best.Error = oc.res.Error
			o.logger.LogBest(ctx, oc.run, oc.res.Error)
			writeSnapshot(ctx, o, best.toRecord(p))
		}
	}

	best.CompletedAt = time.Now()

	// Unconditional final write, stamped with the completion time, so the
	// stored artifact reflects the session even when no run improved on an
	// earlier snapshot.
	if o.writer != nil {
		if err := writeSnapshot(ctx, o, best.toRecord(p)); err != nil {
			return nil, err
		}
	}

	return best.clone(), nil
}

func writeSnapshot(ctx context.Context, o options, rec *snapshot.Record) error {
	if o.writer == nil {
		return nil
	}
	start := time.Now()
	err := o.writer.Write(ctx, rec)
	o.metrics.RecordSnapshot(time.Since(start), err)
	o.logger.LogSnapshot(ctx, o.writer.Name(), err)
	return err
}

// validateClusterCount checks 2 <= k <= axisLen.
func validateClusterCount(axis string, k, axisLen int) error {
	if k < 2 || k > axisLen {
		return &ErrInvalidClusterCount{Axis: axis, Count: k, AxisLen: axisLen}
	}
	return nil
}

// validatePartition checks an initial partition's length and label range.
// A nil partition is valid and means "draw at random".
func validatePartition(axis string, init []int, axisLen, k int) error {
	if init == nil {
		return nil
	}
	if len(init) != axisLen {
		return &ErrPartitionLength{Axis: axis, Got: len(init), AxisLen: axisLen}
	}
	for i, l := range init {
		if l < 0 || l >= k {
			return &ErrLabelOutOfRange{Axis: axis, Index: i, Label: l, Count: k}
		}
	}
	return nil
}
