package divergence

import "math"

// Distance calculates the generalized I-divergence between a data slab z and
// an expected profile y. Assumes both slices are the same length (caller's
// responsibility) and z >= 0, eps > 0.
func Distance(z, y []float64, eps float64) float64 {
	d := 0.0
	for i, v := range y {
		v += eps
		d += v - z[i]*math.Log(v)
	}
	return d
}

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	sum := 0.0
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// SumShifted returns sum(y + eps), the first term of the divergence.
func SumShifted(y []float64, eps float64) float64 {
	sum := 0.0
	for _, v := range y {
		sum += v + eps
	}
	return sum
}

// LogShifted fills dst with log(y + eps), the profile term reused across all
// index positions during a reassignment sweep. dst and y must be the same
// length.
func LogShifted(dst, y []float64, eps float64) {
	for i, v := range y {
		dst[i] = math.Log(v + eps)
	}
}

// Argmin returns the index of the smallest value in d.
// Ties resolve to the lowest index.
func Argmin(d []float64) int {
	best := 0
	for i := 1; i < len(d); i++ {
		if d[i] < d[best] {
			best = i
		}
	}
	return best
}
