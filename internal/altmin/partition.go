package altmin

import (
	"io"
	"log/slog"
	"math/rand"
)

// Options configures a single optimizer run.
type Options struct {
	// Threshold is the convergence tolerance on the objective delta.
	Threshold float64

	// MaxIterations caps the number of iterations (>= 1).
	MaxIterations int

	// Epsilon regularizes empty blocks and log arguments (> 0).
	Epsilon float64

	// RowInit, ColInit, BandInit optionally fix the initial partitions.
	// When nil, a uniform-residue random permutation is used. BandInit is
	// ignored by Cocluster.
	RowInit, ColInit, BandInit []int

	// Rand drives the random partition initialization. Each run owns its own
	// source; runs never share one.
	Rand *rand.Rand

	// Logger receives per-iteration debug output. Nil discards.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Result is the outcome of one optimizer run. Immutable once returned.
type Result struct {
	Converged    bool
	Iterations   int
	RowClusters  []int
	ColClusters  []int
	BandClusters []int // nil for co-clustering
	Error        float64
}

// initPartition returns a random permutation of the uniform-residue labeling
// mod(0..n-1, k), so every cluster starts near-equally occupied.
func initPartition(n, k int, rng *rand.Rand) []int {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i % k
	}
	rng.Shuffle(n, func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
	return labels
}

// resolveInit copies the supplied initial partition, or draws a random one.
func resolveInit(init []int, n, k int, rng *rand.Rand) []int {
	if init == nil {
		return initPartition(n, k, rng)
	}
	labels := make([]int, len(init))
	copy(labels, init)
	return labels
}

// bincount counts label occurrences into a fixed-size histogram, so
// unpopulated clusters contribute an explicit zero.
func bincount(labels []int, k int) []int {
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func populated(counts []int) int {
	n := 0
	for _, c := range counts {
		if c > 0 {
			n++
		}
	}
	return n
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
