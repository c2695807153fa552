package refine

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Measures names the per-block summary statistics, in feature order.
var Measures = []string{"mean", "std", "pct_5", "pct_95", "max", "min"}

const numFeatures = 6

// blockFeatures summarizes every populated block of values. blockOf maps an
// element index to its flat block index. The returned bitmap marks populated
// blocks; the feature matrix holds one numFeatures-wide row per populated
// block, in ascending block order, and sizes holds the matching element
// counts.
func blockFeatures(values []float64, blockOf func(int) int, nBlocks int) (*roaring.Bitmap, []float64, []int) {
	buckets := make([][]float64, nBlocks)
	for i, v := range values {
		b := blockOf(i)
		buckets[b] = append(buckets[b], v)
	}

	populated := roaring.New()
	feats := make([]float64, 0, nBlocks*numFeatures)
	sizes := make([]int, 0, nBlocks)
	for b, vals := range buckets {
		if len(vals) == 0 {
			continue
		}
		populated.Add(uint32(b))
		sizes = append(sizes, len(vals))

		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		mean := sum / float64(len(vals))

		variance := 0.0
		for _, v := range vals {
			variance += (v - mean) * (v - mean)
		}
		std := math.Sqrt(variance / float64(len(vals)))

		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		feats = append(feats,
			mean,
			std,
			percentile(sorted, 5),
			percentile(sorted, 95),
			sorted[len(sorted)-1],
			sorted[0],
		)
	}
	return populated, feats, sizes
}

// percentile interpolates linearly between the two nearest order statistics.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// normalize min-max scales each feature column over the n rows. A column
// with zero range maps to all zeros.
func normalize(feats []float64, n int) []float64 {
	out := make([]float64, len(feats))
	for f := 0; f < numFeatures; f++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for r := 0; r < n; r++ {
			v := feats[r*numFeatures+f]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		rng := hi - lo
		for r := 0; r < n; r++ {
			if rng == 0 {
				out[r*numFeatures+f] = 0
				continue
			}
			out[r*numFeatures+f] = (feats[r*numFeatures+f] - lo) / rng
		}
	}
	return out
}
