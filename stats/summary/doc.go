// Package summary provides valid-data accounting and summary statistics for
// grids.
//
// Missing cells never contribute: every statistic is computed over the valid
// cells only, and positions refer to row-major cell indices of the grid.
package summary
