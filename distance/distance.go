// Package distance provides distance calculations for feature vectors.
//
// All kernels operate on float64 slices and assume both arguments have the
// same length (caller's responsibility).
package distance

import (
	"fmt"
	"math"
)

// Dot calculates the dot product of two vectors.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Euclidean calculates the L2 (Euclidean) distance between two vectors.
// Prefer SquaredL2 for nearest-neighbor comparisons; the square root does
// not change the argmin.
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricDot
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricDot:
		return "Dot"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2:
		return SquaredL2, nil
	case MetricDot:
		return Dot, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
