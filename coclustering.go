package cubeclust

import (
	"context"
	"math/rand"

	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/internal/altmin"
)

// Coclustering is a best-of-N co-clustering session over a matrix. It
// simultaneously groups rows and columns so that the block structure
// approximates the data under a generalized I-divergence objective.
type Coclustering struct {
	z    *cube.Matrix
	opts options
	p    sessionParams
}

// NewCoclustering creates a session clustering z's rows into nRowClusters
// groups and its columns into nColClusters groups.
func NewCoclustering(z *cube.Matrix, nRowClusters, nColClusters int, optFns ...Option) (*Coclustering, error) {
	if z == nil {
		return nil, ErrNilData
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if err := validateClusterCount("row", nRowClusters, z.Rows()); err != nil {
		return nil, err
	}
	if err := validateClusterCount("column", nColClusters, z.Cols()); err != nil {
		return nil, err
	}
	if err := validatePartition("row", opts.rowInit, z.Rows(), nRowClusters); err != nil {
		return nil, err
	}
	if err := validatePartition("column", opts.colInit, z.Cols(), nColClusters); err != nil {
		return nil, err
	}
	if (opts.rowInit != nil || opts.colInit != nil) && opts.nRuns != 1 {
		return nil, ErrInitialPartitionRuns
	}

	return &Coclustering{
		z:    z,
		opts: opts,
		p: sessionParams{
			nRowClusters:  nRowClusters,
			nColClusters:  nColClusters,
			threshold:     opts.threshold,
			maxIterations: opts.maxIterations,
			nRuns:         opts.nRuns,
			epsilon:       opts.epsilon,
		},
	}, nil
}

// Run executes all configured runs and returns the lowest-error outcome.
func (c *Coclustering) Run(ctx context.Context) (*Results, error) {
	run := func(_ context.Context, runIdx int, rng *rand.Rand, shared any) (altmin.Result, error) {
		z := shared.(*cube.Matrix)
		res := altmin.Cocluster(z, c.p.nRowClusters, c.p.nColClusters, altmin.Options{
			Threshold:     c.opts.threshold,
			MaxIterations: c.opts.maxIterations,
			Epsilon:       c.opts.epsilon,
			RowInit:       c.opts.rowInit,
			ColInit:       c.opts.colInit,
			Rand:          rng,
			Logger:        c.opts.logger.WithRun(runIdx).Logger,
		})
		return res, nil
	}
	return runSession(ctx, c.opts, c.p, c.z, run)
}
