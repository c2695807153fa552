package altmin

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cubeclust/cube"
)

// plantedCube builds a 2x4x4 cube whose second band is the complement of the
// first, so the planted partitions yield eight homogeneous blocks.
func plantedCube(t *testing.T) *cube.Cube {
	t.Helper()
	z, err := cube.NewCube(2, 4, 4, []float64{
		// band 0
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		// band 1
		0, 0, 1, 1,
		0, 0, 1, 1,
		1, 1, 0, 0,
		1, 1, 0, 0,
	})
	require.NoError(t, err)
	return z
}

// bruteBandError recomputes the band-axis objective directly from the
// definition, without any contraction shortcuts.
func bruteBandError(z *cube.Cube, bands, rows, cols []int, nBand, nRow, nCol int, eps float64) float64 {
	d, m, n := z.Bands(), z.Rows(), z.Cols()
	gavg := z.Mean()

	sum := make([]float64, nBand*nRow*nCol)
	cnt := make([]float64, nBand*nRow*nCol)
	for b := 0; b < d; b++ {
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				p := (bands[b]*nRow+rows[i])*nCol + cols[j]
				sum[p] += z.At(b, i, j)
				cnt[p]++
			}
		}
	}
	avg := make([]float64, len(sum))
	for p := range avg {
		avg[p] = (sum[p] + gavg*eps) / (cnt[p] + eps)
	}

	e := 0.0
	for b := 0; b < d; b++ {
		best := math.Inf(1)
		for bc := 0; bc < nBand; bc++ {
			dv := 0.0
			for i := 0; i < m; i++ {
				for j := 0; j < n; j++ {
					y := avg[(bc*nRow+rows[i])*nCol+cols[j]] + eps
					dv += y - z.At(b, i, j)*math.Log(y)
				}
			}
			if dv < best {
				best = dv
			}
		}
		e += best
	}
	return e
}

func TestTricluster_PlantedInit(t *testing.T) {
	z := plantedCube(t)
	bandInit := []int{0, 1}
	rowInit := []int{0, 0, 1, 1}
	colInit := []int{0, 0, 1, 1}

	res := Tricluster(z, 2, 2, 2, Options{
		Threshold:     1e-5,
		MaxIterations: 10,
		Epsilon:       1e-8,
		BandInit:      bandInit,
		RowInit:       rowInit,
		ColInit:       colInit,
	})

	assert.True(t, res.Converged)
	assert.Equal(t, bandInit, res.BandClusters)
	assert.Equal(t, rowInit, res.RowClusters)
	assert.Equal(t, colInit, res.ColClusters)
	// Second iteration reproduces the first one's objective exactly.
	assert.Equal(t, 2, res.Iterations)

	want := bruteBandError(z, bandInit, rowInit, colInit, 2, 2, 2, 1e-8)
	assert.InDelta(t, want, res.Error, 1e-9)
}

func TestTricluster_ErrorNearZeroForExactBlocks(t *testing.T) {
	// Blocks holding 0 and e are exact fixed points with (nearly) vanishing
	// divergence: y - z*log(y) is 0 at z = y = e and ~eps at z = y = 0.
	v := math.E
	z, err := cube.NewCube(2, 2, 2, []float64{
		v, 0,
		0, v,

		0, v,
		v, 0,
	})
	require.NoError(t, err)

	res := Tricluster(z, 2, 2, 2, Options{
		Threshold:     1e-5,
		MaxIterations: 20,
		Epsilon:       1e-8,
		BandInit:      []int{0, 1},
		RowInit:       []int{0, 1},
		ColInit:       []int{0, 1},
	})

	assert.True(t, res.Converged)
	assert.InDelta(t, 0.0, res.Error, 1e-4)
}

func TestTricluster_RandomInitProperties(t *testing.T) {
	z := plantedCube(t)

	for _, seed := range []int64{1, 2, 3, 4, 5} {
		res := Tricluster(z, 2, 2, 2, Options{
			Threshold:     1e-5,
			MaxIterations: 50,
			Epsilon:       1e-8,
			Rand:          rand.New(rand.NewSource(seed)),
		})

		assert.Len(t, res.BandClusters, 2)
		assert.Len(t, res.RowClusters, 4)
		assert.Len(t, res.ColClusters, 4)
		for _, l := range res.BandClusters {
			assert.GreaterOrEqual(t, l, 0)
			assert.Less(t, l, 2)
		}
		for _, l := range res.RowClusters {
			assert.GreaterOrEqual(t, l, 0)
			assert.Less(t, l, 2)
		}
		for _, l := range res.ColClusters {
			assert.GreaterOrEqual(t, l, 0)
			assert.Less(t, l, 2)
		}
		assert.LessOrEqual(t, res.Iterations, 50)
		assert.False(t, math.IsNaN(res.Error))
		assert.False(t, math.IsInf(res.Error, 0))
	}
}

func TestTricluster_EmptyClustersStayFinite(t *testing.T) {
	// More clusters than distinct groups forces empty blocks; epsilon
	// regularization must keep everything finite.
	z := plantedCube(t)

	res := Tricluster(z, 2, 3, 3, Options{
		Threshold:     1e-5,
		MaxIterations: 30,
		Epsilon:       1e-8,
		Rand:          rand.New(rand.NewSource(7)),
	})

	assert.False(t, math.IsNaN(res.Error))
	assert.False(t, math.IsInf(res.Error, 0))
	for _, l := range res.RowClusters {
		assert.Less(t, l, 3)
	}
	for _, l := range res.ColClusters {
		assert.Less(t, l, 3)
	}
}

func TestTricluster_MaxIterationsReached(t *testing.T) {
	z := plantedCube(t)

	res := Tricluster(z, 2, 2, 2, Options{
		Threshold:     0, // unattainable: |delta| < 0 is never true
		MaxIterations: 3,
		Epsilon:       1e-8,
		Rand:          rand.New(rand.NewSource(11)),
	})

	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
}
