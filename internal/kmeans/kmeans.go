package kmeans

import (
	"errors"
	"math"
	"math/rand"
)

// ErrTooFewVectors is returned when fewer vectors than clusters are given.
var ErrTooFewVectors = errors.New("kmeans: fewer vectors than clusters")

// Partition clusters the given vectors (flattened, n*dim values) into k
// groups using Lloyd's algorithm and returns one label per vector.
// Deterministic for a fixed seed.
func Partition(vectors []float64, dim, k, maxIter int, seed int64) ([]int, error) {
	n := len(vectors) / dim
	if n < k {
		return nil, ErrTooFewVectors
	}

	rng := rand.New(rand.NewSource(seed))

	centroids := make([]float64, k*dim)

	// Initialize centroids from distinct data points.
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		copy(centroids[i*dim:(i+1)*dim], vectors[perm[i]*dim:(perm[i]+1)*dim])
	}

	assignments := make([]int, n)
	counts := make([]int, k)
	sums := make([]float64, k*dim)

	for iter := 0; iter < maxIter; iter++ {
		changed := false

		// Assignment step
		for i := 0; i < n; i++ {
			vec := vectors[i*dim : (i+1)*dim]
			bestCluster := 0
			minDist := math.Inf(1)

			for j := 0; j < k; j++ {
				center := centroids[j*dim : (j+1)*dim]
				if d := squaredL2(vec, center); d < minDist {
					minDist = d
					bestCluster = j
				}
			}

			if assignments[i] != bestCluster {
				assignments[i] = bestCluster
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		// Update step
		for i := range sums {
			sums[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			cluster := assignments[i]
			vec := vectors[i*dim : (i+1)*dim]
			for d := 0; d < dim; d++ {
				sums[cluster*dim+d] += vec[d]
			}
			counts[cluster]++
		}

		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float64(counts[j])
				for d := 0; d < dim; d++ {
					centroids[j*dim+d] = sums[j*dim+d] * scale
				}
			} else {
				// Re-seed an empty cluster with a data point.
				idx := rng.Intn(n)
				copy(centroids[j*dim:(j+1)*dim], vectors[idx*dim:(idx+1)*dim])
			}
		}
	}

	return assignments, nil
}

func squaredL2(a, b []float64) float64 {
	sum := 0.0
	for i, v := range a {
		d := v - b[i]
		sum += d * d
	}
	return sum
}
