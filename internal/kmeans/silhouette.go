package kmeans

import "math"

// Silhouette returns the mean silhouette coefficient over all vectors, a
// partition-quality score in [-1, 1] where higher is better.
//
// For each vector: a = mean euclidean distance to its own cluster's other
// members, b = the smallest mean distance to any other cluster, and the
// coefficient is (b-a)/max(a,b). Members of singleton clusters score 0.
func Silhouette(vectors []float64, dim int, labels []int, k int) float64 {
	n := len(vectors) / dim
	if n == 0 {
		return 0
	}

	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	total := 0.0
	distSums := make([]float64, k)
	for i := 0; i < n; i++ {
		li := labels[i]
		if counts[li] <= 1 {
			continue // silhouette of a singleton is defined as 0
		}

		for c := range distSums {
			distSums[c] = 0
		}
		vi := vectors[i*dim : (i+1)*dim]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			distSums[labels[j]] += math.Sqrt(squaredL2(vi, vectors[j*dim:(j+1)*dim]))
		}

		a := distSums[li] / float64(counts[li]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == li || counts[c] == 0 {
				continue
			}
			if m := distSums[c] / float64(counts[c]); m < b {
				b = m
			}
		}
		if math.IsInf(b, 1) {
			continue // single populated cluster, no score
		}

		if m := math.Max(a, b); m > 0 {
			total += (b - a) / m
		}
	}

	return total / float64(n)
}
