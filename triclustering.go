package cubeclust

import (
	"context"
	"math/rand"

	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/internal/altmin"
)

// Triclustering is a best-of-N tri-clustering session over a data cube. It
// simultaneously groups bands, rows and columns so that the block structure
// approximates the data under a generalized I-divergence objective.
type Triclustering struct {
	z    *cube.Cube
	opts options
	p    sessionParams
}

// NewTriclustering creates a session clustering z's bands, rows and columns
// into nBandClusters, nRowClusters and nColClusters groups respectively.
func NewTriclustering(z *cube.Cube, nBandClusters, nRowClusters, nColClusters int, optFns ...Option) (*Triclustering, error) {
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

	if err := validateClusterCount("band", nBandClusters, z.Bands()); err != nil {
		return nil, err
	}
	if err := validateClusterCount("row", nRowClusters, z.Rows()); err != nil {
		return nil, err
	}
	if err := validateClusterCount("column", nColClusters, z.Cols()); err != nil {
		return nil, err
	}
	if err := validatePartition("band", opts.bandInit, z.Bands(), nBandClusters); err != nil {
		return nil, err
	}
	if err := validatePartition("row", opts.rowInit, z.Rows(), nRowClusters); err != nil {
		return nil, err
	}
	if err := validatePartition("column", opts.colInit, z.Cols(), nColClusters); err != nil {
		return nil, err
	}
	if (opts.bandInit != nil || opts.rowInit != nil || opts.colInit != nil) && opts.nRuns != 1 {
		return nil, ErrInitialPartitionRuns
	}

	return &Triclustering{
		z:    z,
		opts: opts,
		p: sessionParams{
			nRowClusters:  nRowClusters,
			nColClusters:  nColClusters,
			nBandClusters: nBandClusters,
			threshold:     opts.threshold,
			maxIterations: opts.maxIterations,
			nRuns:         opts.nRuns,
			epsilon:       opts.epsilon,
		},
	}, nil
}

// Run executes all configured runs and returns the lowest-error outcome.
func (t *Triclustering) Run(ctx context.Context) (*Results, error) {
	run := func(_ context.Context, runIdx int, rng *rand.Rand, shared any) (altmin.Result, error) {
		z := shared.(*cube.Cube)
		res := altmin.Tricluster(z, t.p.nBandClusters, t.p.nRowClusters, t.p.nColClusters, altmin.Options{
			Threshold:     t.opts.threshold,
			MaxIterations: t.opts.maxIterations,
			Epsilon:       t.opts.epsilon,
			BandInit:      t.opts.bandInit,
			RowInit:       t.opts.rowInit,
			ColInit:       t.opts.colInit,
			Rand:          rng,
			Logger:        t.opts.logger.WithRun(runIdx).Logger,
		})
		return res, nil
	}
	return runSession(ctx, t.opts, t.p, t.z, run)
}
