// Package altmin implements the alternating-minimization block clustering
// algorithms: co-clustering for rank-2 arrays and tri-clustering for rank-3
// arrays.
//
// Each iteration recomputes per-block averages from the current axis
// partitions, then reassigns every axis's labels to the candidate cluster
// with the smallest I-divergence from the data. Block aggregation is
// expressed as a sequence of axis-wise contractions (the occupancy matrix is
// applied along one axis at a time), never as a per-block scan of the data.
//
// A single run is fully synchronous; concurrency across runs is the
// orchestrator's concern.
package altmin
