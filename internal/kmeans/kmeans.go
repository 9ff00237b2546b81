package kmeans

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fholstege/unsupervised-bias-detection/distance"
)

// parallelThreshold is the row count above which the assignment step fans
// out across goroutines.
const parallelThreshold = 2048

// Train clusters the rows of X into k groups using Lloyd's algorithm and
// returns the centroids and the per-row assignment. Centroids are
// initialized from k distinct rows drawn with rng, so identical seeds yield
// identical clusterings.
//
// If X has fewer than k rows there is nothing to cluster and Train returns
// (nil, nil, nil).
func Train(ctx context.Context, X [][]float64, k, maxIter int, metric distance.Metric, rng *rand.Rand) ([][]float64, []int, error) {
	n := len(X)
	if n < k {
		return nil, nil, nil
	}
	dim := len(X[0])

	distFunc, err := distance.Provider(metric)
	if err != nil {
		return nil, nil, err
	}

	centroids := make([][]float64, k)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		centroids[i] = make([]float64, dim)
		copy(centroids[i], X[perm[i]])
	}

	assignments := make([]int, n)
	counts := make([]int, k)
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		changed, err := assignRows(ctx, X, centroids, assignments, distFunc)
		if err != nil {
			return nil, nil, err
		}
		if !changed {
			break
		}

		// Update step
		for i := range sums {
			for d := range sums[i] {
				sums[i][d] = 0
			}
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := assignments[i]
			for d := 0; d < dim; d++ {
				sums[c][d] += X[i][d]
			}
			counts[c]++
		}
		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float64(counts[j])
				for d := 0; d < dim; d++ {
					centroids[j][d] = sums[j][d] * scale
				}
			} else {
				// Re-seed an empty cluster from a random row
				copy(centroids[j], X[rng.Intn(n)])
			}
		}
	}

	return centroids, assignments, nil
}

// assignRows writes the nearest-centroid index of every row into
// assignments and reports whether any assignment changed. Large inputs are
// chunked across goroutines; writes are disjoint per chunk.
func assignRows(ctx context.Context, X, centroids [][]float64, assignments []int, distFunc distance.Func) (bool, error) {
	n := len(X)
	if n < parallelThreshold {
		changed := false
		for i := 0; i < n; i++ {
			best := Assign(X[i], centroids, distFunc)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		return changed, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	changes := make([]bool, workers)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				best := Assign(X[i], centroids, distFunc)
				if assignments[i] != best {
					assignments[i] = best
					changes[w] = true
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, c := range changes {
		if c {
			return true, nil
		}
	}
	return false, nil
}

// Assign returns the index of the centroid closest to vec. Ties resolve to
// the lowest index.
func Assign(vec []float64, centroids [][]float64, distFunc distance.Func) int {
	best := -1
	minDist := math.MaxFloat64
	for j, center := range centroids {
		if d := distFunc(vec, center); d < minDist {
			minDist = d
			best = j
		}
	}
	return best
}
