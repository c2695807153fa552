package altmin

import (
	"math"

	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/divergence"
)

// Cocluster runs the alternating-minimization co-clustering of a rank-2
// array into nRow x nCol blocks. It never fails on non-convergence; the
// Result carries the Converged flag and the iteration count.
func Cocluster(z *cube.Matrix, nRow, nCol int, opts Options) Result {
	logger := opts.logger()

	m, n := z.Rows(), z.Cols()
	data := z.Values()
	gavg := z.Mean()

	rows := resolveInit(opts.RowInit, m, nRow, opts.Rand)
	cols := resolveInit(opts.ColInit, n, nCol, opts.Rand)

	// Scratch buffers reused across iterations.
	rowSums := make([]float64, nRow*n)    // data contracted along rows
	blockSum := make([]float64, nRow*nCol)
	avg := make([]float64, nRow*nCol)
	logAvg := make([]float64, nRow*nCol)
	zc := make([]float64, nCol)  // one row of data contracted along columns
	zr := make([]float64, nRow)  // one column of data contracted along rows
	dist := make([]float64, max(nRow, nCol))
	sumY := make([]float64, max(nRow, nCol))

	// Seeded so the very first iteration cannot trip the convergence test.
	e, oldE := 2*opts.Threshold, 0.0
	iters := 0
	converged := false

	for !converged && iters < opts.MaxIterations {
		rowCounts := bincount(rows, nRow)
		colCounts := bincount(cols, nCol)
		logger.Debug("iteration",
			"iter", iters,
			"populated_row_clusters", populated(rowCounts),
			"populated_col_clusters", populated(colCounts),
		)

		// Block averages: contract the row axis, then the column axis.
		zero(rowSums)
		for i := 0; i < m; i++ {
			base := rows[i] * n
			zi := data[i*n : (i+1)*n]
			for j, v := range zi {
				rowSums[base+j] += v
			}
		}
		zero(blockSum)
		for r := 0; r < nRow; r++ {
			rs := rowSums[r*n : (r+1)*n]
			bs := blockSum[r*nCol : (r+1)*nCol]
			for j, v := range rs {
				bs[cols[j]] += v
			}
		}
		for r := 0; r < nRow; r++ {
			for c := 0; c < nCol; c++ {
				count := float64(rowCounts[r] * colCounts[c])
				avg[r*nCol+c] = (blockSum[r*nCol+c] + gavg*opts.Epsilon) / (count + opts.Epsilon)
			}
		}
		divergence.LogShifted(logAvg, avg, opts.Epsilon)

		// Row reassignment. For candidate r the unpacked profile along a row
		// is avg[r][cols[j]], so the distance reduces to per-cluster sums.
		for r := 0; r < nRow; r++ {
			s := 0.0
			for c := 0; c < nCol; c++ {
				s += float64(colCounts[c]) * (avg[r*nCol+c] + opts.Epsilon)
			}
			sumY[r] = s
		}
		for i := 0; i < m; i++ {
			zero(zc)
			zi := data[i*n : (i+1)*n]
			for j, v := range zi {
				zc[cols[j]] += v
			}
			for r := 0; r < nRow; r++ {
				dist[r] = sumY[r] - divergence.Dot(zc, logAvg[r*nCol:(r+1)*nCol])
			}
			rows[i] = divergence.Argmin(dist[:nRow])
		}

		// Column reassignment uses the freshly updated row partition.
		rowCounts = bincount(rows, nRow)
		for c := 0; c < nCol; c++ {
			s := 0.0
			for r := 0; r < nRow; r++ {
				s += float64(rowCounts[r]) * (avg[r*nCol+c] + opts.Epsilon)
			}
			sumY[c] = s
		}
		minSum := 0.0
		for j := 0; j < n; j++ {
			zero(zr)
			for i := 0; i < m; i++ {
				zr[rows[i]] += data[i*n+j]
			}
			for c := 0; c < nCol; c++ {
				d := sumY[c]
				for r := 0; r < nRow; r++ {
					d -= zr[r] * logAvg[r*nCol+c]
				}
				dist[c] = d
			}
			best := divergence.Argmin(dist[:nCol])
			cols[j] = best
			minSum += dist[best]
		}

		// The objective proxy is the column-axis divergence only, matching
		// the convergence contract. It is not a joint likelihood.
		oldE = e
		e = minSum
		logger.Debug("objective", "iter", iters, "error", e, "delta", e-oldE)

		converged = math.Abs(e-oldE) < opts.Threshold
		iters++
	}

	return Result{
		Converged:   converged,
		Iterations:  iters,
		RowClusters: rows,
		ColClusters: cols,
		Error:       e,
	}
}
