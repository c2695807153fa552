// Package refine regroups the blocks produced by a clustering session into
// a smaller number of interpretable clusters.
//
// Every populated block is summarized by six statistics of its values
// (mean, standard deviation, 5th and 95th percentile, maximum, minimum).
// The min-max normalized statistics are clustered with k-means for a range
// of candidate k, and the k with the highest mean silhouette score wins.
package refine
