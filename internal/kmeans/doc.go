// Package kmeans implements k-means clustering over flat float64 feature
// vectors, plus silhouette scoring of a partition.
//
// Used by the refinement stage to regroup blocks by their summary
// statistics. All randomness flows from an explicit seed, so repeated
// invocations on the same input produce identical partitions.
package kmeans
