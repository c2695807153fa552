package cubeclust_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/cubeclust"
	"github.com/hupe1980/cubeclust/blobstore"
	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/snapshot"
)

// Example_coclustering demonstrates co-clustering a matrix with fixed
// initial partitions.
func Example_coclustering() {
	ctx := context.Background()

	z, err := cube.NewMatrix(5, 4, []float64{
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	cc, err := cubeclust.NewCoclustering(z, 2, 2,
		cubeclust.WithMaxIterations(10),
		cubeclust.WithInitialPartitions(nil, []int{0, 0, 1, 1, 1}, []int{0, 0, 1, 1}),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := cc.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Converged:", res.Converged)
	fmt.Println("Row clusters:", res.RowClusters)
	fmt.Println("Col clusters:", res.ColClusters)
	// Output:
	// Converged: true
	// Row clusters: [0 0 1 1 1]
	// Col clusters: [0 0 1 1]
}

// Example_multiRun demonstrates a best-of-N session with deterministic
// seeding and parallel execution.
func Example_multiRun() {
	ctx := context.Background()

	z, err := cube.NewMatrix(5, 4, []float64{
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	cc, err := cubeclust.NewCoclustering(z, 2, 2,
		cubeclust.WithRuns(5),
		cubeclust.WithMaxIterations(100),
		cubeclust.WithSeed(42),
		cubeclust.WithParallelism(2),
	)
	if err != nil {
		log.Fatal(err)
	}

	res, err := cc.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Completed runs:", res.NRunsCompleted)
	// Output: Completed runs: 5
}

// Example_snapshot demonstrates persisting the best-so-far state to a blob
// store.
func Example_snapshot() {
	ctx := context.Background()

	z, err := cube.NewMatrix(5, 4, []float64{
		1, 1, 0, 0,
		1, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	store := blobstore.NewMemoryStore()
	writer := snapshot.NewWriter(store, "session.json")

	cc, err := cubeclust.NewCoclustering(z, 2, 2,
		cubeclust.WithRuns(3),
		cubeclust.WithMaxIterations(100),
		cubeclust.WithSeed(1),
		cubeclust.WithSnapshotWriter(writer),
	)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := cc.Run(ctx); err != nil {
		log.Fatal(err)
	}

	rec, err := writer.Read(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Stored as:", writer.Name())
	fmt.Println("Runs recorded:", rec.NRunsCompleted)
	// Output:
	// Stored as: session.json
	// Runs recorded: 3
}
