package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredL2(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}

	assert.InDelta(t, 25.0, SquaredL2(a, b), 1e-12)
	assert.Zero(t, SquaredL2(a, a))
}

func TestEuclidean(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}

	assert.InDelta(t, 5.0, Euclidean(a, b), 1e-12)
	assert.Zero(t, Euclidean(a, a))
}

func TestDot(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	assert.InDelta(t, 32.0, Dot(a, b), 1e-12)
}

func TestProvider(t *testing.T) {
	f, err := Provider(MetricL2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f([]float64{0, 0}, []float64{1, 1}), 1e-12)

	f, err = Provider(MetricDot)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f([]float64{1, 1}, []float64{1, 1}), 1e-12)

	_, err = Provider(Metric(999))
	assert.Error(t, err)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "L2", MetricL2.String())
	assert.Equal(t, "Dot", MetricDot.String())
	assert.Equal(t, "Unknown(999)", Metric(999).String())
}
