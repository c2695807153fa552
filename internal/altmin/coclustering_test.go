package altmin

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cubeclust/cube"
)

// plantedMatrix builds the 5x4 two-block example: rows {0,1} x cols {0,1}
// hold 1, rows {2,3,4} x cols {2,3} hold 1, everything else 0.
func plantedMatrix(t *testing.T) *cube.Matrix {
	t.Helper()
	z, err := cube.NewMatrix(5, 4, []float64{
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	require.NoError(t, err)
	return z
}

// bruteColError recomputes the column-axis objective directly from the
// definition, without any contraction shortcuts.
func bruteColError(z *cube.Matrix, rows, cols []int, nRow, nCol int, eps float64) float64 {
	m, n := z.Rows(), z.Cols()
	gavg := z.Mean()

	sum := make([][]float64, nRow)
	cnt := make([][]float64, nRow)
	for r := range sum {
		sum[r] = make([]float64, nCol)
		cnt[r] = make([]float64, nCol)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum[rows[i]][cols[j]] += z.At(i, j)
			cnt[rows[i]][cols[j]]++
		}
	}
	avg := make([][]float64, nRow)
	for r := range avg {
		avg[r] = make([]float64, nCol)
		for c := range avg[r] {
			avg[r][c] = (sum[r][c] + gavg*eps) / (cnt[r][c] + eps)
		}
	}

	e := 0.0
	for j := 0; j < n; j++ {
		best := math.Inf(1)
		for c := 0; c < nCol; c++ {
			d := 0.0
			for i := 0; i < m; i++ {
				y := avg[rows[i]][c] + eps
				d += y - z.At(i, j)*math.Log(y)
			}
			if d < best {
				best = d
			}
		}
		e += best
	}
	return e
}

func TestCocluster_PlantedInit(t *testing.T) {
	z := plantedMatrix(t)
	rowInit := []int{0, 0, 1, 1, 1}
	colInit := []int{0, 0, 1, 1}

	res := Cocluster(z, 2, 2, Options{
		Threshold:     1e-5,
		MaxIterations: 10,
		Epsilon:       1e-8,
		RowInit:       rowInit,
		ColInit:       colInit,
	})

	assert.True(t, res.Converged)
	assert.Equal(t, rowInit, res.RowClusters)
	assert.Equal(t, colInit, res.ColClusters)
	// Second iteration reproduces the first one's objective exactly.
	assert.Equal(t, 2, res.Iterations)

	want := bruteColError(z, rowInit, colInit, 2, 2, 1e-8)
	assert.InDelta(t, want, res.Error, 1e-9)
}

func TestCocluster_ErrorNearZeroForExactBlocks(t *testing.T) {
	// Blocks holding 0 and e are exact fixed points with (nearly) vanishing
	// divergence: y - z*log(y) is 0 at z = y = e and ~eps at z = y = 0.
	v := math.E
	z, err := cube.NewMatrix(4, 4, []float64{
		v, v, 0, 0,
		v, v, 0, 0,
		0, 0, v, v,
		0, 0, v, v,
	})
	require.NoError(t, err)

	res := Cocluster(z, 2, 2, Options{
		Threshold:     1e-5,
		MaxIterations: 20,
		Epsilon:       1e-8,
		RowInit:       []int{0, 0, 1, 1},
		ColInit:       []int{0, 0, 1, 1},
	})

	assert.True(t, res.Converged)
	assert.InDelta(t, 0.0, res.Error, 1e-4)
}

func TestCocluster_RandomInitProperties(t *testing.T) {
	z := plantedMatrix(t)

	for _, seed := range []int64{1, 2, 3, 4, 5} {
		res := Cocluster(z, 2, 2, Options{
			Threshold:     1e-5,
			MaxIterations: 50,
			Epsilon:       1e-8,
			Rand:          rand.New(rand.NewSource(seed)),
		})

		assert.Len(t, res.RowClusters, 5)
		assert.Len(t, res.ColClusters, 4)
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

func TestCocluster_EmptyClustersStayFinite(t *testing.T) {
	// More clusters than distinct groups forces empty blocks; epsilon
	// regularization must keep everything finite.
	z := plantedMatrix(t)

	res := Cocluster(z, 4, 3, Options{
		Threshold:     1e-5,
		MaxIterations: 30,
		Epsilon:       1e-8,
		Rand:          rand.New(rand.NewSource(7)),
	})

	assert.False(t, math.IsNaN(res.Error))
	assert.False(t, math.IsInf(res.Error, 0))
	for _, l := range res.RowClusters {
		assert.Less(t, l, 4)
	}
	for _, l := range res.ColClusters {
		assert.Less(t, l, 3)
	}
}

func TestCocluster_MaxIterationsReached(t *testing.T) {
	z := plantedMatrix(t)

	res := Cocluster(z, 2, 2, Options{
		Threshold:     0, // unattainable: |delta| < 0 is never true
		MaxIterations: 3,
		Epsilon:       1e-8,
		Rand:          rand.New(rand.NewSource(11)),
	})

	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
}
