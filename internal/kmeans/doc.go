// Package kmeans implements k-means clustering over feature rows.
//
// Used internally by the default split strategy to bisect an open cluster
// into two groups.
package kmeans
