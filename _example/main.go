package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hupe1980/cubeclust"
	"github.com/hupe1980/cubeclust/blobstore"
	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/refine"
	"github.com/hupe1980/cubeclust/snapshot"
)

func main() {
	seed := int64(4711)
	rows := 120
	cols := 80
	nRowClusters := 4
	nColClusters := 3
	nRuns := 10

	z := generatePlantedMatrix(rows, cols, nRowClusters, nColClusters, seed)

	store := blobstore.NewMemoryStore()
	writer := snapshot.NewWriter(store, "session.json",
		snapshot.WithCompression(snapshot.CompressionZSTD),
	)

	cc, err := cubeclust.NewCoclustering(z, nRowClusters, nColClusters,
		cubeclust.WithRuns(nRuns),
		cubeclust.WithMaxIterations(100),
		cubeclust.WithParallelism(4),
		cubeclust.WithSeed(seed),
		cubeclust.WithSnapshotWriter(writer),
		cubeclust.WithLogger(cubeclust.NewTextLogger(slog.LevelInfo)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Co-clustering ---")
	fmt.Println("Shape:", rows, "x", cols)
	fmt.Println("Clusters:", nRowClusters, "x", nColClusters)
	fmt.Println("Runs:", nRuns)

	start := time.Now()

	res, err := cc.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Seconds: %.2f\n", time.Since(start).Seconds())
	fmt.Printf("Error: %.4f, converged runs: %d/%d\n\n", res.Error, res.NRunsConverged, res.NRunsCompleted)

	fmt.Println("--- Refinement ---")

	ref, err := refine.Matrix(z, res.RowClusters, res.ColClusters, nRowClusters, nColClusters,
		refine.WithSeed(seed),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Selected k:", ref.K)
	for k, s := range ref.Scores {
		fmt.Printf("k=%d silhouette=%.4f\n", k, s)
	}
}

// generatePlantedMatrix builds a noisy block-structured matrix.
func generatePlantedMatrix(rows, cols, nRow, nCol int, seed int64) *cube.Matrix {
	rng := rand.New(rand.NewSource(seed))

	values := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			level := float64((i*nRow/rows)*nCol + j*nCol/cols)
			values[i*cols+j] = 10*level + rng.Float64()
		}
	}

	z, err := cube.NewMatrix(rows, cols, values)
	if err != nil {
		log.Fatal(err)
	}
	return z
}
