package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	// Two tight groups: near (0,0) and near (10,10).
	vecs := []float64{
		0, 0, 0, 1, 1, 0,
		10, 10, 10, 11, 11, 10,
	}

	labels, err := Partition(vecs, 2, 2, 100, 1)
	require.NoError(t, err)
	require.Len(t, labels, 6)

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
	assert.NotEqual(t, labels[0], labels[3])
}

func TestPartition_Deterministic(t *testing.T) {
	vecs := []float64{0, 0, 1, 1, 5, 5, 6, 6, 10, 10}

	first, err := Partition(vecs, 2, 3, 50, 42)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Partition(vecs, 2, 3, 50, 42)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPartition_TooFewVectors(t *testing.T) {
	_, err := Partition([]float64{0, 0}, 2, 2, 10, 1)
	assert.ErrorIs(t, err, ErrTooFewVectors)
}

func TestSilhouette(t *testing.T) {
	// Well-separated groups score close to 1.
	vecs := []float64{
		0, 0, 0, 1,
		10, 10, 10, 11,
	}
	labels := []int{0, 0, 1, 1}

	score := Silhouette(vecs, 2, labels, 2)
	assert.Greater(t, score, 0.8)
	assert.LessOrEqual(t, score, 1.0)
}

func TestSilhouette_WorseForBadPartition(t *testing.T) {
	vecs := []float64{
		0, 0, 0, 1,
		10, 10, 10, 11,
	}
	good := Silhouette(vecs, 2, []int{0, 0, 1, 1}, 2)
	bad := Silhouette(vecs, 2, []int{0, 1, 0, 1}, 2)
	assert.Greater(t, good, bad)
}

func TestSilhouette_SingletonScoresZero(t *testing.T) {
	vecs := []float64{0, 0, 10, 10, 10, 11}
	labels := []int{0, 1, 1}

	// The singleton contributes 0; the rest are well separated.
	score := Silhouette(vecs, 2, labels, 2)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestSilhouette_Empty(t *testing.T) {
	assert.Zero(t, Silhouette(nil, 2, nil, 2))
}
