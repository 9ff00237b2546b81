package biasdetect

import (
	"context"
	"time"

	"github.com/fholstege/unsupervised-bias-detection/distance"
	"github.com/fholstege/unsupervised-bias-detection/internal/kmeans"
)

// Predict assigns each row of X the label of its nearest centroid by
// squared Euclidean distance, ties resolving to the lowest label.
//
// Predict is read-only and requires a prior successful Fit. Because fit
// labels reflect the split path while Predict reflects geometric proximity
// after the fact, Predict is not guaranteed to reproduce Labels even on the
// exact fitting data.
func (c *HierarchicalClustering) Predict(ctx context.Context, X [][]float64) ([]int, error) {
	start := time.Now()

	out, err := c.predict(X)

	c.logger.LogPredict(ctx, len(X), err)
	c.metrics.RecordPredict(len(X), time.Since(start), err)

	return out, err
}

func (c *HierarchicalClustering) predict(X [][]float64) ([]int, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	for _, row := range X {
		if len(row) != c.dim {
			return nil, &ErrDimensionMismatch{Expected: c.dim, Actual: len(row)}
		}
	}

	out := make([]int, len(X))
	for i, row := range X {
		out[i] = kmeans.Assign(row, c.centroids, distance.SquaredL2)
	}
	return out, nil
}

// Fitted reports whether Fit has completed successfully.
func (c *HierarchicalClustering) Fitted() bool { return c.fitted }

// NClusters returns the number of final clusters, or 0 before Fit.
func (c *HierarchicalClustering) NClusters() int { return c.nClusters }

// Labels returns the final cluster label of every fitting row, remapped so
// that label 0 carries the highest discrimination score. Returns nil before
// Fit. The returned slice is owned by the engine and must not be modified.
func (c *HierarchicalClustering) Labels() []int { return c.labels }

// Scores returns the discrimination scores of the final clusters, sorted
// descending; Scores()[k] is the score of label k. Returns nil before Fit.
// The returned slice is owned by the engine and must not be modified.
func (c *HierarchicalClustering) Scores() []float64 { return c.scores }

// Centroids returns one row of per-feature means per final cluster,
// indexed by label. Returns nil before Fit. The returned slices are owned
// by the engine and must not be modified.
func (c *HierarchicalClustering) Centroids() [][]float64 { return c.centroids }
