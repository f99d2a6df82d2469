// Package grid provides the two-dimensional raster sample type shared by the
// neighborhood aggregator, the TPI compositor and the raster codecs.
//
// A Grid stores rows × cols float64 samples in row-major order (row 0 is the
// top row) together with a missing-cell mask. Missingness is tracked by the
// mask rather than by a reserved numeric value, so an elevation of exactly 0
// stays a real measurement unless the caller asks otherwise:
//
//	g, err := grid.FromSentinel(rows, cols, samples, -9999)
//	legacy, err := grid.FromSentinel(rows, cols, samples, -9999, grid.WithZeroAsMissing())
//
// Row and RowMask expose the backing storage of a single row so bulk
// operations can work on contiguous slices without per-cell indexing.
package grid
