package refine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/internal/kmeans"
)

// DefaultMaxKRatio bounds the default candidate range: k runs from 2 up to
// this fraction of the populated block count.
const DefaultMaxKRatio = 0.8

var (
	// ErrNilData is returned when the input array is nil.
	ErrNilData = errors.New("refine: data must not be nil")

	// ErrTooFewBlocks is returned when fewer than two blocks are populated,
	// so no regrouping is possible.
	ErrTooFewBlocks = errors.New("refine: need at least two populated blocks")
)

// ErrInvalidK indicates a candidate k outside [2, populated block count].
type ErrInvalidK struct {
	K         int
	Populated int
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("refine: k %d out of range [2, %d]", e.K, e.Populated)
}

// Clusterer partitions feature vectors and scores a partition. The default
// implementation is k-means with mean silhouette scoring.
type Clusterer interface {
	// Partition assigns each of the len(vectors)/dim vectors to one of k
	// clusters.
	Partition(vectors []float64, dim, k int) ([]int, error)

	// Score rates a partition; higher is better.
	Score(vectors []float64, dim int, labels []int, k int) float64
}

// KMeansClusterer is the default Clusterer.
type KMeansClusterer struct {
	MaxIterations int
	Seed          int64
}

func (c KMeansClusterer) Partition(vectors []float64, dim, k int) ([]int, error) {
	return kmeans.Partition(vectors, dim, k, c.MaxIterations, c.Seed)
}

func (c KMeansClusterer) Score(vectors []float64, dim int, labels []int, k int) float64 {
	return kmeans.Silhouette(vectors, dim, labels, k)
}

type options struct {
	kRange        []int
	maxKRatio     float64
	maxIterations int
	seed          int64
	logger        *slog.Logger
	clusterer     Clusterer
}

func defaultOptions() options {
	return options{
		maxKRatio:     DefaultMaxKRatio,
		maxIterations: 100,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a refinement.
type Option func(*options)

// WithKRange fixes the candidate cluster counts to try. Without it the range
// is 2 up to DefaultMaxKRatio times the populated block count.
func WithKRange(ks []int) Option {
	return func(o *options) {
		o.kRange = ks
	}
}

// WithMaxKRatio adjusts the upper bound of the default candidate range as a
// fraction of the populated block count.
func WithMaxKRatio(r float64) Option {
	return func(o *options) {
		o.maxKRatio = r
	}
}

// WithMaxIterations caps the k-means iterations per candidate k.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithSeed makes the k-means initialization deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}

// WithClusterer replaces the default k-means clusterer.
func WithClusterer(c Clusterer) Option {
	return func(o *options) {
		o.clusterer = c
	}
}

// Result is the outcome of a refinement.
//
// LabelGrid and MeanCentroids are flat arrays over the block grid (row-major
// in Shape order); entries for unpopulated blocks are NaN.
type Result struct {
	// K is the selected number of refined clusters.
	K int

	// Scores maps each candidate k to its silhouette score.
	Scores map[int]float64

	// Shape is the block grid shape: {nRow, nCol} or {nBand, nRow, nCol}.
	Shape []int

	// LabelGrid holds the refined cluster label per block, NaN where the
	// block is unpopulated.
	LabelGrid []float64

	// MeanCentroids holds, per block, the mean over all raw data elements of
	// the blocks in the same refined cluster. NaN where the block is
	// unpopulated.
	MeanCentroids []float64
}

// Matrix refines a co-clustering outcome: rowLabels and colLabels assign
// each of z's rows and columns to one of nRow and nCol clusters.
func Matrix(z *cube.Matrix, rowLabels, colLabels []int, nRow, nCol int, optFns ...Option) (*Result, error) {
	if z == nil {
		return nil, ErrNilData
	}
	if err := validateLabels("row", rowLabels, z.Rows(), nRow); err != nil {
		return nil, err
	}
	if err := validateLabels("column", colLabels, z.Cols(), nCol); err != nil {
		return nil, err
	}

	n := z.Cols()
	blockOf := func(i int) int {
		return rowLabels[i/n]*nCol + colLabels[i%n]
	}
	return run(z.Values(), blockOf, nRow*nCol, []int{nRow, nCol}, optFns)
}

// Cube refines a tri-clustering outcome over a rank-3 array.
func Cube(z *cube.Cube, bandLabels, rowLabels, colLabels []int, nBand, nRow, nCol int, optFns ...Option) (*Result, error) {
	if z == nil {
		return nil, ErrNilData
	}
	if err := validateLabels("band", bandLabels, z.Bands(), nBand); err != nil {
		return nil, err
	}
	if err := validateLabels("row", rowLabels, z.Rows(), nRow); err != nil {
		return nil, err
	}
	if err := validateLabels("column", colLabels, z.Cols(), nCol); err != nil {
		return nil, err
	}

	m, n := z.Rows(), z.Cols()
	blockOf := func(i int) int {
		b := i / (m * n)
		r := (i / n) % m
		c := i % n
		return (bandLabels[b]*nRow+rowLabels[r])*nCol + colLabels[c]
	}
	return run(z.Values(), blockOf, nBand*nRow*nCol, []int{nBand, nRow, nCol}, optFns)
}

func validateLabels(axis string, labels []int, axisLen, k int) error {
	if len(labels) != axisLen {
		return fmt.Errorf("refine: %s labels have length %d, axis has %d elements", axis, len(labels), axisLen)
	}
	for i, l := range labels {
		if l < 0 || l >= k {
			return fmt.Errorf("refine: %s label %d at index %d out of range [0, %d)", axis, l, i, k)
		}
	}
	return nil
}

func run(values []float64, blockOf func(int) int, nBlocks int, shape []int, optFns []Option) (*Result, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.clusterer == nil {
		o.clusterer = KMeansClusterer{MaxIterations: o.maxIterations, Seed: o.seed}
	}

	pop, feats, sizes := blockFeatures(values, blockOf, nBlocks)
	nPop := int(pop.GetCardinality())
	if nPop < 2 {
		return nil, ErrTooFewBlocks
	}

	// Ascending order so the strict > selection below keeps the smallest k
	// on ties.
	kRange := append([]int(nil), o.kRange...)
	sort.Ints(kRange)
	if len(kRange) == 0 {
		kMax := int(o.maxKRatio * float64(nPop))
		if kMax < 2 {
			kMax = 2
		}
		for k := 2; k <= kMax; k++ {
			kRange = append(kRange, k)
		}
	}
	for _, k := range kRange {
		if k < 2 || k > nPop {
			return nil, &ErrInvalidK{K: k, Populated: nPop}
		}
		if float64(k) > DefaultMaxKRatio*float64(nPop) {
			o.logger.Warn("candidate k close to populated block count, clusters may be trivial",
				"k", k,
				"populated_blocks", nPop,
			)
		}
	}

	norm := normalize(feats, nPop)

	bestK := 0
	bestScore := math.Inf(-1)
	var bestLabels []int
	scores := make(map[int]float64, len(kRange))
	for _, k := range kRange {
		labels, err := o.clusterer.Partition(norm, numFeatures, k)
		if err != nil {
			return nil, fmt.Errorf("refine: k=%d: %w", k, err)
		}
		score := o.clusterer.Score(norm, numFeatures, labels, k)
		scores[k] = score
		o.logger.Debug("candidate evaluated", "k", k, "silhouette", score)

		if score > bestScore {
			bestK, bestScore, bestLabels = k, score, labels
		}
	}

	tied := 0
	for _, s := range scores {
		if s == bestScore {
			tied++
		}
	}
	if tied > 1 {
		o.logger.Warn("silhouette tie, keeping smallest k", "k", bestK, "tied_candidates", tied)
	}

	// Mean over all raw data elements per refined cluster: block sums are
	// recovered as mean times element count, so small blocks do not count as
	// much as large ones.
	groupSum := make([]float64, bestK)
	groupN := make([]float64, bestK)
	for p, l := range bestLabels {
		groupSum[l] += feats[p*numFeatures] * float64(sizes[p]) // feature 0 is the block mean
		groupN[l] += float64(sizes[p])
	}
	groupAvg := make([]float64, bestK)
	for g := range groupAvg {
		if groupN[g] == 0 {
			groupAvg[g] = math.NaN()
			continue
		}
		groupAvg[g] = groupSum[g] / groupN[g]
	}

	labelGrid := make([]float64, nBlocks)
	meanGrid := make([]float64, nBlocks)
	for i := range labelGrid {
		labelGrid[i] = math.NaN()
		meanGrid[i] = math.NaN()
	}
	p := 0
	pop.Iterate(func(b uint32) bool {
		labelGrid[b] = float64(bestLabels[p])
		meanGrid[b] = groupAvg[bestLabels[p]]
		p++
		return true
	})

	return &Result{
		K:             bestK,
		Scores:        scores,
		Shape:         shape,
		LabelGrid:     labelGrid,
		MeanCentroids: meanGrid,
	}, nil
}
