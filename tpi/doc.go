// Package tpi derives the Topographic Position Index from a DEM grid.
//
// TPI is the elevation of a cell minus the mean elevation of its
// neighborhood, excluding the cell itself. Positive values mark ridges and
// hilltops, negative values valleys, values near zero flats or constant
// slopes.
//
// # Usage
//
//	w, _ := window.Generate(window.TypeSquare, 121)
//	out, _, err := tpi.Compute(dem, w)
//
// or, when the accumulators are needed as well:
//
//	res, err := neighborhood.Aggregate(dem, w)
//	out := tpi.Compose(dem, res)
//
// A cell is missing in the output when it is missing in the input or when no
// valid neighbor exists in its window. Missing output cells hold the nodata
// value (0 unless [WithNoData] is given); the output never contains NaN or Inf.
package tpi
