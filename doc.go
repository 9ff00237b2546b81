// Package biasdetect provides bias-aware hierarchical clustering for
// auditing datasets and models.
//
// Given a feature matrix X and a per-row outcome metric y (for example a
// misclassification indicator or per-row prediction error), the engine
// searches for subpopulations whose outcome diverges sharply from the rest
// of the population. It recursively bisects the open cluster with the
// highest outcome dispersion and keeps a split only if it does not lower
// the discrimination score: mean metric outside a group minus mean metric
// inside it.
//
// # Quick Start
//
//	hc, err := biasdetect.New(24, 10, biasdetect.WithRandomSeed(42))
//	if err != nil {
//	    panic(err)
//	}
//	if err := hc.Fit(ctx, X, y); err != nil {
//	    panic(err)
//	}
//
//	// Label 0 is the most divergent subgroup.
//	fmt.Println(hc.NClusters(), hc.Scores()[0])
//
//	// Assign new rows to the fitted clusters by nearest centroid.
//	labels, err := hc.Predict(ctx, newRows)
//
// # Snapshots
//
// A fitted engine can be serialized and reloaded:
//
//	var buf bytes.Buffer
//	_ = hc.SaveToWriter(&buf)
//	hc2, _ := biasdetect.LoadFromReader(&buf)
//
// # Split Strategies
//
// The bisection capability is pluggable. The default is seeded 2-means over
// the feature columns; any algorithm producing a two-way partition of a
// point set can be supplied via WithSplitStrategy. Swapping the strategy
// changes which subgroups the search can find, not the orchestration.
//
// The algorithm follows Misztal-Radecka and Indurkhya, "Bias-Aware
// Hierarchical Clustering for detecting the discriminated groups of users
// in recommendation systems", Information Processing & Management 58(3),
// 2021.
package biasdetect
