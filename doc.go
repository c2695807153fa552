// Package cubeclust performs block clustering of dense numeric arrays:
// co-clustering of matrices (rows x columns) and tri-clustering of data
// cubes (bands x rows x columns) under a generalized I-divergence objective.
//
// A session launches several independently initialized alternating-
// minimization runs, keeps the lowest-error outcome, and persists snapshots
// of the best-so-far state as it improves:
//
//	z, _ := cube.NewMatrix(5, 4, values)
//	cc, err := cubeclust.NewCoclustering(z, 2, 2,
//	    cubeclust.WithRuns(10),
//	    cubeclust.WithMaxIterations(100),
//	)
//	if err != nil { ... }
//	res, err := cc.Run(ctx)
//
// The refine subpackage regroups the resulting blocks into fewer,
// interpretable clusters using per-block summary statistics.
package cubeclust
