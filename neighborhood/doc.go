// Package neighborhood computes windowed neighbor sums and valid-neighbor
// counts over a grid.
//
// For every cell (r, c) and window w the aggregator produces
//
//	Sum[r,c]   = Σ w(dy,dx) · g[r+dy, c+dx]
//	Count[r,c] = Σ w(dy,dx)
//
// over the offsets whose source cell is in bounds and not missing. Missing
// neighbors are excluded from both grids, not merely zero-weighted, and cells
// near the border naturally see fewer neighbors.
//
// # Strategies
//
// The default [StrategyOverlap] never scans a window per cell. Instead every
// nonzero window offset is applied once to the whole grid: the grid shifted
// by (dy, dx) is overlapped with itself via [Views], and the overlapping rows
// are added in bulk. Work is O(active offsets × cells) and memory is the two
// accumulators plus two rows of scratch, independent of the window size.
//
// [StrategyFFT] evaluates the same sums by 2-D FFT convolution, which wins for
// very large dense windows at the cost of a padded complex plane.
// [StrategyAuto] picks between them using [ChooseStrategy].
//
// [Direct] is a literal nested-loop reference implementation.
//
// # Usage
//
//	w, _ := window.Generate(window.TypeSquare, 121)
//	res, err := neighborhood.Aggregate(dem, w)
//	mean, ok := res.Mean(r, c)
//
// Aggregation is a pure function of its inputs: the grid is never modified
// and repeated runs produce bit-identical results.
package neighborhood
