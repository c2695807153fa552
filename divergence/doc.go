// Package divergence provides the information-divergence distance used to
// score cluster assignments.
//
// The measure is the generalized (power-1) I-divergence between a data slab z
// and an expected block profile y of the same length:
//
//	d = sum(y + eps) - sum(z * log(y + eps))
//
// A small positive eps keeps the logarithm inside its domain and regularizes
// profiles with near-zero expected values, so empty blocks never produce
// NaN or Inf.
package divergence
