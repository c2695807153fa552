package altmin

import (
	"math"

	"github.com/hupe1980/cubeclust/cube"
	"github.com/hupe1980/cubeclust/divergence"
)

// Tricluster runs the alternating-minimization tri-clustering of a rank-3
// array into nBand x nRow x nCol blocks. All three reassignment sweeps of an
// iteration use the partitions captured at the start of that iteration.
func Tricluster(z *cube.Cube, nBand, nRow, nCol int, opts Options) Result {
	logger := opts.logger()

	d, m, n := z.Bands(), z.Rows(), z.Cols()
	data := z.Values()
	gavg := z.Mean()
	eps := opts.Epsilon

	bands := resolveInit(opts.BandInit, d, nBand, opts.Rand)
	rows := resolveInit(opts.RowInit, m, nRow, opts.Rand)
	cols := resolveInit(opts.ColInit, n, nCol, opts.Rand)

	// Contraction intermediates, reused across iterations. Both are bounded
	// by the data size since nBand <= d and nRow <= m.
	t1 := make([]float64, nBand*m*n)      // band axis contracted
	t2 := make([]float64, nBand*nRow*n)   // band and row axes contracted
	u1 := make([]float64, d*nRow*n)       // row axis contracted
	blockAvg := make([]float64, nBand*nRow*nCol)
	logAvg := make([]float64, nBand*nRow*nCol)
	zb := make([]float64, nBand*nCol) // per-row slab contracted on band+col
	zrc := make([]float64, nRow*nCol) // per-band slab contracted on row+col
	kMax := max(nBand, nRow, nCol)
	dist := make([]float64, kMax)
	sumY := make([]float64, kMax)

	colsPrev := make([]int, n)

	e, oldE := 2*opts.Threshold, 0.0
	iters := 0
	converged := false

	for !converged && iters < opts.MaxIterations {
		// The band sweep below must see this iteration's starting column
		// partition even after the column sweep has reassigned it.
		copy(colsPrev, cols)

		bandCounts := bincount(bands, nBand)
		rowCounts := bincount(rows, nRow)
		colCounts := bincount(cols, nCol)
		logger.Debug("iteration",
			"iter", iters,
			"populated_band_clusters", populated(bandCounts),
			"populated_row_clusters", populated(rowCounts),
			"populated_col_clusters", populated(colCounts),
		)

		// Contract one axis at a time: band, then row, then column.
		zero(t1)
		for b := 0; b < d; b++ {
			dst := t1[bands[b]*m*n : (bands[b]+1)*m*n]
			src := data[b*m*n : (b+1)*m*n]
			for p, v := range src {
				dst[p] += v
			}
		}
		zero(t2)
		for bc := 0; bc < nBand; bc++ {
			for i := 0; i < m; i++ {
				dst := t2[(bc*nRow+rows[i])*n : (bc*nRow+rows[i])*n+n]
				src := t1[(bc*m+i)*n : (bc*m+i)*n+n]
				for j, v := range src {
					dst[j] += v
				}
			}
		}
		for bc := 0; bc < nBand; bc++ {
			for rc := 0; rc < nRow; rc++ {
				rowSums := t2[(bc*nRow+rc)*n : (bc*nRow+rc)*n+n]
				sum := make([]float64, nCol)
				for j, v := range rowSums {
					sum[cols[j]] += v
				}
				for cc := 0; cc < nCol; cc++ {
					count := float64(bandCounts[bc] * rowCounts[rc] * colCounts[cc])
					blockAvg[(bc*nRow+rc)*nCol+cc] = (sum[cc] + gavg*eps) / (count + eps)
				}
			}
		}
		divergence.LogShifted(logAvg, blockAvg, eps)

		// Row-axis contraction feeding the band sweep, from the
		// start-of-iteration row partition.
		zero(u1)
		for b := 0; b < d; b++ {
			for i := 0; i < m; i++ {
				dst := u1[(b*nRow+rows[i])*n : (b*nRow+rows[i])*n+n]
				src := data[(b*m+i)*n : (b*m+i)*n+n]
				for j, v := range src {
					dst[j] += v
				}
			}
		}

		// Row sweep.
		for rc := 0; rc < nRow; rc++ {
			s := 0.0
			for bc := 0; bc < nBand; bc++ {
				for cc := 0; cc < nCol; cc++ {
					s += float64(bandCounts[bc]*colCounts[cc]) * (blockAvg[(bc*nRow+rc)*nCol+cc] + eps)
				}
			}
			sumY[rc] = s
		}
		for i := 0; i < m; i++ {
			zero(zb)
			for bc := 0; bc < nBand; bc++ {
				src := t1[(bc*m+i)*n : (bc*m+i)*n+n]
				dst := zb[bc*nCol : (bc+1)*nCol]
				for j, v := range src {
					dst[cols[j]] += v
				}
			}
			for rc := 0; rc < nRow; rc++ {
				v := sumY[rc]
				for bc := 0; bc < nBand; bc++ {
					v -= divergence.Dot(zb[bc*nCol:(bc+1)*nCol], logAvg[(bc*nRow+rc)*nCol:(bc*nRow+rc)*nCol+nCol])
				}
				dist[rc] = v
			}
			rows[i] = divergence.Argmin(dist[:nRow])
		}

		// Column sweep.
		for cc := 0; cc < nCol; cc++ {
			s := 0.0
			for bc := 0; bc < nBand; bc++ {
				for rc := 0; rc < nRow; rc++ {
					s += float64(bandCounts[bc]*rowCounts[rc]) * (blockAvg[(bc*nRow+rc)*nCol+cc] + eps)
				}
			}
			sumY[cc] = s
		}
		for j := 0; j < n; j++ {
			for cc := 0; cc < nCol; cc++ {
				v := sumY[cc]
				for bc := 0; bc < nBand; bc++ {
					for rc := 0; rc < nRow; rc++ {
						v -= t2[(bc*nRow+rc)*n+j] * logAvg[(bc*nRow+rc)*nCol+cc]
					}
				}
				dist[cc] = v
			}
			cols[j] = divergence.Argmin(dist[:nCol])
		}

		// Band sweep; its minimal distances are the objective proxy.
		for bc := 0; bc < nBand; bc++ {
			s := 0.0
			for rc := 0; rc < nRow; rc++ {
				for cc := 0; cc < nCol; cc++ {
					s += float64(rowCounts[rc]*colCounts[cc]) * (blockAvg[(bc*nRow+rc)*nCol+cc] + eps)
				}
			}
			sumY[bc] = s
		}
		minSum := 0.0
		for b := 0; b < d; b++ {
			zero(zrc)
			for rc := 0; rc < nRow; rc++ {
				src := u1[(b*nRow+rc)*n : (b*nRow+rc)*n+n]
				dst := zrc[rc*nCol : (rc+1)*nCol]
				for j, v := range src {
					dst[colsPrev[j]] += v
				}
			}
			for bc := 0; bc < nBand; bc++ {
				v := sumY[bc]
				for rc := 0; rc < nRow; rc++ {
					v -= divergence.Dot(zrc[rc*nCol:(rc+1)*nCol], logAvg[(bc*nRow+rc)*nCol:(bc*nRow+rc)*nCol+nCol])
				}
				dist[bc] = v
			}
			best := divergence.Argmin(dist[:nBand])
			bands[b] = best
			minSum += dist[best]
		}

		oldE = e
		e = minSum
		logger.Debug("objective", "iter", iters, "error", e, "delta", e-oldE)

		converged = math.Abs(e-oldE) < opts.Threshold
		iters++
	}

	return Result{
		Converged:    converged,
		Iterations:   iters,
		RowClusters:  rows,
		ColClusters:  cols,
		BandClusters: bands,
		Error:        e,
	}
}
