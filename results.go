package cubeclust

import (
	"math"
	"time"

	"github.com/hupe1980/cubeclust/snapshot"
)

// Results is the aggregate outcome of a clustering session.
//
// Error is +Inf until at least one run completes; any finite error from a
// completed run replaces it. RowClusters and ColClusters are nil in that
// same no-value state. BandClusters is nil for co-clustering sessions.
type Results struct {
	// Converged reports whether the best run converged within its iteration
	// budget.
	Converged bool

	// Iterations is the number of iterations the best run performed.
	Iterations int

	// BandClusters, RowClusters, ColClusters are the best run's cluster
	// assignments per axis element.
	BandClusters []int
	RowClusters  []int
	ColClusters  []int

	// Error is the best (lowest) approximation error across completed runs.
	Error float64

	// NRunsCompleted counts runs that finished without failure.
	NRunsCompleted int

	// NRunsConverged counts completed runs that converged.
	NRunsConverged int

	// NRunsFailed counts runs that returned an error and were skipped.
	NRunsFailed int

	// CompletedAt is when the session finished draining all runs.
	CompletedAt time.Time
}

func newResults() *Results {
	return &Results{Error: math.Inf(1)}
}

// hasValue reports whether any run has produced a usable outcome.
func (r *Results) hasValue() bool {
	return !math.IsInf(r.Error, 1)
}

// clone returns a deep copy so callers cannot alias internal state.
func (r *Results) clone() *Results {
	out := *r
	out.BandClusters = append([]int(nil), r.BandClusters...)
	out.RowClusters = append([]int(nil), r.RowClusters...)
	out.ColClusters = append([]int(nil), r.ColClusters...)
	return &out
}

// toRecord converts the results into a serializable snapshot record.
func (r *Results) toRecord(p sessionParams) *snapshot.Record {
	rec := &snapshot.Record{
		NRowClusters:   p.nRowClusters,
		NColClusters:   p.nColClusters,
		NBandClusters:  p.nBandClusters,
		ConvThreshold:  p.threshold,
		MaxIterations:  p.maxIterations,
		NRuns:          p.nRuns,
		Epsilon:        p.epsilon,
		RowClusters:    r.RowClusters,
		ColClusters:    r.ColClusters,
		BandClusters:   r.BandClusters,
		NRunsCompleted: r.NRunsCompleted,
		NRunsConverged: r.NRunsConverged,
	}
	if r.hasValue() {
		e := r.Error
		rec.Error = &e
	}
	if !r.CompletedAt.IsZero() {
		rec.CompletedAt = r.CompletedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

// sessionParams carries the input parameters into snapshot records.
type sessionParams struct {
	nRowClusters  int
	nColClusters  int
	nBandClusters int
	threshold     float64
	maxIterations int
	nRuns         int
	epsilon       float64
}
