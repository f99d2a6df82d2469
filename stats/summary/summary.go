package summary

import (
	"errors"
	"fmt"
	"math"
	"sort"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-terrain/grid"
)

// Errors returned by Percentile.
var (
	ErrNoValidCells      = errors.New("summary: no valid cells")
	ErrInvalidPercentile = errors.New("summary: percentile out of range")
)

// Validity counts valid cells of a grid.
type Validity struct {
	Valid    int
	Total    int
	Fraction float64 // Valid / Total
}

// String formats v the way the validdata command reports it.
func (v Validity) String() string {
	return fmt.Sprintf("%d valid of %d pixels (%.2f%%)", v.Valid, v.Total, 100*v.Fraction)
}

// ValidData counts the cells of g that are not missing.
func ValidData(g *grid.Grid) Validity {
	total := g.Len()
	valid := total - g.MissingCount()
	return Validity{
		Valid:    valid,
		Total:    total,
		Fraction: float64(valid) / float64(total),
	}
}

// ValidMask returns a grid holding 1 for valid cells and 0 for missing ones.
// The mask itself has no missing cells.
func ValidMask(g *grid.Grid) *grid.Grid {
	rows, cols := g.Dims()
	out, err := grid.New(rows, cols)
	if err != nil {
		panic(err)
	}
	for r := 0; r < rows; r++ {
		mask := g.RowMask(r)
		dst := out.Row(r)
		for c := range dst {
			if mask == nil || !mask[c] {
				dst[c] = 1
			}
		}
	}
	return out
}

// Stats holds summary statistics over the valid cells of a grid.
type Stats struct {
	Count    int
	Mean     float64
	StdDev   float64 // population
	Variance float64 // population
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Range    float64 // max - min
	RMS      float64
	Peak     float64 // max(|max|, |min|)
}

// Calculate computes all statistics in a single pass over the valid cells
// using Welford's online algorithm for the variance.
// An all-missing grid yields the zero Stats with MinPos and MaxPos set to -1.
func Calculate(g *grid.Grid) Stats {
	// Welford accumulators.
	var (
		n     int
		mean  float64
		m2    float64
		sumSq float64
	)

	var minVal, maxVal float64
	minPos, maxPos := -1, -1

	rows, cols := g.Dims()
	for r := 0; r < rows; r++ {
		mask := g.RowMask(r)
		for c, x := range g.Row(r) {
			if mask != nil && mask[c] {
				continue
			}
			n++
			delta := x - mean
			mean += delta / float64(n)
			m2 += delta * (x - mean)
			sumSq += x * x

			i := r*cols + c
			if maxPos < 0 || x > maxVal {
				maxVal, maxPos = x, i
			}
			if minPos < 0 || x < minVal {
				minVal, minPos = x, i
			}
		}
	}

	if n == 0 {
		return Stats{MinPos: -1, MaxPos: -1}
	}

	nf := float64(n)
	variance := m2 / nf
	return Stats{
		Count:    n,
		Mean:     mean,
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Range:    maxVal - minVal,
		RMS:      math.Sqrt(sumSq / nf),
		Peak:     math.Max(math.Abs(maxVal), math.Abs(minVal)),
	}
}

// Mean returns the mean of the valid cells, or 0 if there are none.
// Rows without missing cells are summed in bulk.
func Mean(g *grid.Grid) float64 {
	var sum float64
	var n int
	rows, _ := g.Dims()
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		mask := g.RowMask(r)
		if mask == nil {
			sum += vecmath.Sum(row)
			n += len(row)
			continue
		}
		for c, v := range row {
			if !mask[c] {
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Peak returns the largest absolute value over the valid cells.
func Peak(g *grid.Grid) float64 {
	var peak float64
	rows, _ := g.Dims()
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		mask := g.RowMask(r)
		if mask == nil {
			peak = math.Max(peak, vecmath.MaxAbs(row))
			continue
		}
		for c, v := range row {
			if !mask[c] {
				peak = math.Max(peak, math.Abs(v))
			}
		}
	}
	return peak
}

// Percentile returns the empirical p-quantile (0 ≤ p ≤ 1) of the valid cells.
func Percentile(g *grid.Grid, p float64) (float64, error) {
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPercentile, p)
	}
	sorted := validValues(g)
	if len(sorted) == 0 {
		return 0, ErrNoValidCells
	}
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil), nil
}

// Percentiles is like Percentile for several quantiles, sorting once.
func Percentiles(g *grid.Grid, ps ...float64) ([]float64, error) {
	for _, p := range ps {
		if p < 0 || p > 1 || math.IsNaN(p) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPercentile, p)
		}
	}
	sorted := validValues(g)
	if len(sorted) == 0 {
		return nil, ErrNoValidCells
	}
	sort.Float64s(sorted)

	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return out, nil
}

func validValues(g *grid.Grid) []float64 {
	out := make([]float64, 0, g.Len()-g.MissingCount())
	rows, _ := g.Dims()
	for r := 0; r < rows; r++ {
		mask := g.RowMask(r)
		for c, v := range g.Row(r) {
			if mask == nil || !mask[c] {
				out = append(out, v)
			}
		}
	}
	return out
}
