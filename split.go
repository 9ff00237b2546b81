package biasdetect

import (
	"context"
	"math/rand"

	"github.com/fholstege/unsupervised-bias-detection/distance"
	"github.com/fholstege/unsupervised-bias-detection/internal/kmeans"
)

// SplitStrategy partitions a set of points into exactly two groups.
//
// Split receives the feature rows of one open cluster (never the outcome
// metric) and returns one label per row, each 0 or 1. Implementations may
// use internal randomness and may parallelize internally, but must not
// touch engine state; implementations intended for reproducible experiments
// must be seedable.
type SplitStrategy interface {
	Split(ctx context.Context, X [][]float64) ([]int, error)
}

// defaultKMeansIter bounds Lloyd iterations per bisection.
const defaultKMeansIter = 100

// KMeansStrategy is the default SplitStrategy. It bisects a cluster with
// seeded 2-means over the feature columns.
//
// A strategy instance owns its random source and is not safe for concurrent
// use across engines; give each engine its own instance.
type KMeansStrategy struct {
	maxIter int
	rng     *rand.Rand
}

// NewKMeansStrategy creates a 2-means split strategy with the given seed.
func NewKMeansStrategy(seed int64) *KMeansStrategy {
	return &KMeansStrategy{
		maxIter: defaultKMeansIter,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Split implements SplitStrategy.
//
// Clusters with fewer than two rows cannot be bisected; all rows stay in
// group 0, which the engine then rejects on the minimum-size check.
func (s *KMeansStrategy) Split(ctx context.Context, X [][]float64) ([]int, error) {
	if len(X) < 2 {
		return make([]int, len(X)), nil
	}

	_, assignments, err := kmeans.Train(ctx, X, 2, s.maxIter, distance.MetricL2, s.rng)
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
