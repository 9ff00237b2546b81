package kmeans

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fholstege/unsupervised-bias-detection/distance"
)

func TestTrain(t *testing.T) {
	ctx := context.Background()
	// 2 groups: around (0,0) and around (10,10)
	X := [][]float64{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	}

	centroids, assignments, err := Train(ctx, X, 2, 100, distance.MetricL2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, centroids, 2)
	require.Len(t, assignments, len(X))

	// The two groups must land in different clusters.
	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[0], assignments[2])
	assert.Equal(t, assignments[3], assignments[4])
	assert.Equal(t, assignments[3], assignments[5])
	assert.NotEqual(t, assignments[0], assignments[3])
}

func TestTrain_NotEnoughRows(t *testing.T) {
	ctx := context.Background()
	centroids, assignments, err := Train(ctx, [][]float64{{0, 0}}, 2, 10, distance.MetricL2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Nil(t, centroids)
	assert.Nil(t, assignments)
}

func TestTrain_InvalidMetric(t *testing.T) {
	ctx := context.Background()
	X := [][]float64{{0, 0}, {1, 1}}
	_, _, err := Train(ctx, X, 2, 10, distance.Metric(999), rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestTrain_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	X := make([][]float64, 1000)
	for i := range X {
		X[i] = []float64{float64(i), float64(i)}
	}

	_, _, err := Train(ctx, X, 10, 1000, distance.MetricL2, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrain_Deterministic(t *testing.T) {
	ctx := context.Background()
	X := make([][]float64, 50)
	gen := rand.New(rand.NewSource(7))
	for i := range X {
		X[i] = []float64{gen.NormFloat64(), gen.NormFloat64()}
	}

	_, a1, err := Train(ctx, X, 2, 100, distance.MetricL2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	_, a2, err := Train(ctx, X, 2, 100, distance.MetricL2, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestTrain_LargeInput(t *testing.T) {
	ctx := context.Background()

	// Twice the chunked-assignment threshold, so the concurrent path runs.
	n := 2 * parallelThreshold
	X := make([][]float64, n)
	gen := rand.New(rand.NewSource(5))
	for i := range X {
		if i < n/2 {
			X[i] = []float64{gen.NormFloat64() * 0.5, gen.NormFloat64() * 0.5}
		} else {
			X[i] = []float64{10 + gen.NormFloat64()*0.5, gen.NormFloat64() * 0.5}
		}
	}

	centroids, assignments, err := Train(ctx, X, 2, 100, distance.MetricL2, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.Len(t, centroids, 2)
	require.Len(t, assignments, n)

	// Each group is internally consistent and the groups differ.
	for i := 1; i < n/2; i++ {
		require.Equal(t, assignments[0], assignments[i], "row %d", i)
	}
	for i := n/2 + 1; i < n; i++ {
		require.Equal(t, assignments[n/2], assignments[i], "row %d", i)
	}
	assert.NotEqual(t, assignments[0], assignments[n/2])

	// Converged assignments agree with a serial nearest-centroid pass.
	for i := 0; i < n; i++ {
		require.Equal(t, Assign(X[i], centroids, distance.SquaredL2), assignments[i], "row %d", i)
	}
}

func TestTrain_LargeInput_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	X := make([][]float64, 2*parallelThreshold)
	for i := range X {
		X[i] = []float64{float64(i), float64(i % 7)}
	}

	_, _, err := Train(ctx, X, 4, 100, distance.MetricL2, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssign(t *testing.T) {
	centroids := [][]float64{
		{0, 0},
		{10, 10},
		{20, 20},
	}

	assert.Equal(t, 0, Assign([]float64{1, 1}, centroids, distance.SquaredL2))
	assert.Equal(t, 2, Assign([]float64{19, 19}, centroids, distance.SquaredL2))

	// Equidistant rows resolve to the lowest index.
	assert.Equal(t, 0, Assign([]float64{5, 5}, centroids, distance.SquaredL2))
}
