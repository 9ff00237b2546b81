package biasdetect

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fholstege/unsupervised-bias-detection/codec"
	"github.com/fholstege/unsupervised-bias-detection/internal/queue"
)

// HierarchicalClustering detects subpopulations whose outcome metric
// diverges from the rest of the population by recursive bisection.
//
// Starting from a single cluster holding every point, the engine repeatedly
// pops the open cluster with the highest outcome-metric dispersion, bisects
// it with the configured SplitStrategy, and keeps the split only if it does
// not lower the discrimination score. Final clusters are ranked by score
// descending, so label 0 is always the most divergent subgroup.
//
// An engine instance is not safe for concurrent use. Independent engines on
// independent data may run concurrently; they share no mutable state.
type HierarchicalClustering struct {
	nIter          int
	minClusterSize int
	strategy       SplitStrategy
	codec          codec.Codec
	metrics        MetricsCollector
	logger         *Logger

	fitted    bool
	dim       int
	nClusters int
	labels    []int
	scores    []float64
	centroids [][]float64
}

type finishedCluster struct {
	label int
	score float64
}

// New creates a HierarchicalClustering engine.
//
// nIter is the maximum number of split attempts; zero is legal and yields a
// single trivial cluster. minClusterSize is the minimum size both sides of
// a bisection must reach for the split to be materialized; it must be at
// least 1. Configuration is validated eagerly.
func New(nIter, minClusterSize int, optFns ...Option) (*HierarchicalClustering, error) {
	if nIter < 0 {
		return nil, &ErrInvalidConfig{Field: "nIter", Value: nIter}
	}
	if minClusterSize < 1 {
		return nil, &ErrInvalidConfig{Field: "minClusterSize", Value: minClusterSize}
	}

	o := applyOptions(optFns)

	strategy := o.splitStrategy
	if strategy == nil {
		strategy = NewKMeansStrategy(o.seed)
	}

	return &HierarchicalClustering{
		nIter:          nIter,
		minClusterSize: minClusterSize,
		strategy:       strategy,
		codec:          o.codec,
		metrics:        o.metricsCollector,
		logger:         o.logger,
	}, nil
}

// Fit computes the bias-aware hierarchical clustering of X against the
// outcome metric y.
//
// X is an N×D matrix of feature rows and y a length-N metric vector aligned
// row-for-row with X (e.g. per-row prediction error). Both are read-only
// for the duration of the call. Cancellation is honored between split
// iterations only; a cancelled fit leaves previously fitted state intact.
//
// On success the fitted artifacts are available through Labels, Scores,
// Centroids and NClusters.
func (c *HierarchicalClustering) Fit(ctx context.Context, X [][]float64, y []float64) error {
	start := time.Now()

	n := len(X)
	if err := c.validateFitInput(X, y); err != nil {
		c.logger.LogFit(ctx, n, 0, 0, err)
		c.metrics.RecordFit(0, time.Since(start), err)
		return err
	}
	dim := len(X[0])

	labels := make([]int, n)
	nClusters := 1
	finished := make([]finishedCluster, 0, c.nIter+1)
	q := queue.New(c.nIter + 1)

	// Totals let complement means come from running sums instead of masks.
	totalSum := floats.Sum(y)

	// The whole dataset is the first candidate. It has no meaningful
	// dispersion yet, but it is alone on the queue until after the first
	// split, so the first pop returns it before any ordering comparison
	// can happen.
	q.Push(queue.Candidate{Label: 0, Score: 0})

	for iter := 0; iter < c.nIter; iter++ {
		if err := ctx.Err(); err != nil {
			c.logger.LogFit(ctx, n, dim, 0, err)
			c.metrics.RecordFit(0, time.Since(start), err)
			return err
		}

		cand, ok := q.Pop()
		if !ok {
			break
		}

		splitStart := time.Now()

		indices := memberIndices(labels, cand.Label)
		rows := make([][]float64, len(indices))
		for i, idx := range indices {
			rows[i] = X[idx]
		}

		subLabels, err := c.strategy.Split(ctx, rows)
		if err != nil {
			err = fmt.Errorf("split cluster %d: %w", cand.Label, err)
			c.logger.LogFit(ctx, n, dim, 0, err)
			c.metrics.RecordFit(0, time.Since(start), err)
			return err
		}
		if err := validateSplit(subLabels, len(indices)); err != nil {
			c.logger.LogFit(ctx, n, dim, 0, err)
			c.metrics.RecordFit(0, time.Since(start), err)
			return err
		}

		var indices0, indices1 []int
		for i, sl := range subLabels {
			if sl == 0 {
				indices0 = append(indices0, indices[i])
			} else {
				indices1 = append(indices1, indices[i])
			}
		}

		accepted := false
		if len(indices0) >= c.minClusterSize && len(indices1) >= c.minClusterSize {
			score0 := discriminationScore(y, totalSum, indices0)
			score1 := discriminationScore(y, totalSum, indices1)

			// A tie with the parent score accepts the split.
			if math.Max(score0, score1) >= cand.Score {
				accepted = true

				y0 := gather(y, indices0)
				y1 := gather(y, indices1)

				// Negated std-dev: the queue is a min-heap, so the
				// most dispersed open cluster pops first.
				q.Push(queue.Candidate{
					Dispersion: -stat.PopStdDev(y0, nil),
					Label:      cand.Label,
					Score:      score0,
				})
				q.Push(queue.Candidate{
					Dispersion: -stat.PopStdDev(y1, nil),
					Label:      nClusters,
					Score:      score1,
				})

				for _, idx := range indices1 {
					labels[idx] = nClusters
				}
				nClusters++
			}
		}
		if !accepted {
			finished = append(finished, finishedCluster{label: cand.Label, score: cand.Score})
		}

		c.logger.LogSplit(ctx, cand.Label, len(indices), accepted)
		c.metrics.RecordSplit(accepted, time.Since(splitStart))
	}

	// Whatever is still open keeps its current score.
	for _, cand := range q.Drain() {
		finished = append(finished, finishedCluster{label: cand.Label, score: cand.Score})
	}

	scores, mapping := rankClusters(finished, nClusters)
	for i := range labels {
		labels[i] = mapping[labels[i]]
	}

	c.dim = dim
	c.nClusters = nClusters
	c.labels = labels
	c.scores = scores
	c.centroids = calcCentroids(X, labels, nClusters)
	c.fitted = true

	c.logger.LogFit(ctx, n, dim, nClusters, nil)
	c.metrics.RecordFit(nClusters, time.Since(start), nil)

	return nil
}

func (c *HierarchicalClustering) validateFitInput(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return ErrEmptyDataset
	}
	if len(y) != n {
		return &ErrLengthMismatch{Rows: n, Metrics: len(y)}
	}

	dim := len(X[0])
	if dim == 0 {
		return ErrNoFeatures
	}
	for i, row := range X {
		if len(row) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(row)}
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &ErrNonFinite{Row: i, Col: j}
			}
		}
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ErrNonFinite{Row: i, Col: -1}
		}
	}

	return nil
}

func validateSplit(subLabels []int, want int) error {
	if len(subLabels) != want {
		return &ErrInvalidSplit{
			Reason: fmt.Sprintf("got %d labels for %d rows", len(subLabels), want),
		}
	}
	for _, sl := range subLabels {
		if sl != 0 && sl != 1 {
			return &ErrInvalidSplit{
				Reason: fmt.Sprintf("label %d outside {0, 1}", sl),
			}
		}
	}
	return nil
}

// discriminationScore is the mean metric outside the group minus the mean
// inside it, measured against the whole dataset rather than the parent
// cluster. Both sides of an accepted split are nonempty, so the complement
// is never empty here.
func discriminationScore(y []float64, totalSum float64, indices []int) float64 {
	var sumIn float64
	for _, idx := range indices {
		sumIn += y[idx]
	}
	m := float64(len(indices))
	meanOut := (totalSum - sumIn) / (float64(len(y)) - m)
	return meanOut - sumIn/m
}

// rankClusters sorts finished clusters by score descending and returns the
// ranked scores plus an old-label to rank mapping.
func rankClusters(finished []finishedCluster, nClusters int) ([]float64, []int) {
	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].score > finished[j].score
	})

	scores := make([]float64, len(finished))
	mapping := make([]int, nClusters)
	for rank, fc := range finished {
		scores[rank] = fc.score
		mapping[fc.label] = rank
	}
	return scores, mapping
}

// calcCentroids computes the per-feature mean of every final cluster.
func calcCentroids(X [][]float64, labels []int, nClusters int) [][]float64 {
	dim := len(X[0])
	centroids := make([][]float64, nClusters)
	for k := range centroids {
		centroids[k] = make([]float64, dim)
	}
	counts := make([]int, nClusters)

	for i, row := range X {
		floats.Add(centroids[labels[i]], row)
		counts[labels[i]]++
	}
	for k, count := range counts {
		floats.Scale(1/float64(count), centroids[k])
	}
	return centroids
}

func memberIndices(labels []int, label int) []int {
	var out []int
	for i, l := range labels {
		if l == label {
			out = append(out, i)
		}
	}
	return out
}

func gather(y []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = y[idx]
	}
	return out
}
