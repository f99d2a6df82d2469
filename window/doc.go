// Package window builds the neighborhood weight masks used by the
// aggregation engine.
//
// A Window is an odd height × width matrix of non-negative weights whose
// centre weight is always 0: the cell under evaluation never contributes to
// its own neighborhood. Only nonzero weights become accumulation passes, so
// sparse shapes such as an annulus cost proportionally less than a full square.
//
// # Usage
//
//	w, err := window.Generate(window.TypeSquare, 121)
//	w, err := window.Generate(window.TypeGaussian, 31, window.WithSigma(6))
//	w, err := window.FromWeights([][]float64{{1, 2, 1}, {2, 0, 2}, {1, 2, 1}})
//
// Generate rejects even and non-positive sizes, and windows that end up with
// no nonzero weight (a 1×1 window has no neighbors).
package window
