package grid

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by grid constructors.
var (
	ErrInvalidShape   = errors.New("grid: invalid shape")
	ErrLengthMismatch = errors.New("grid: sample count does not match shape")
)

// Grid is a dense rows × cols raster of float64 samples with a missing-cell mask.
type Grid struct {
	rows, cols int
	data       []float64

	// missing is nil until the first cell is marked missing.
	missing []bool
}

// Option configures sentinel-based grid construction.
type Option func(*config)

type config struct {
	zeroIsMissing bool
}

// WithZeroAsMissing additionally treats samples equal to exactly 0 as missing.
// This reproduces rasters whose nodata was normalised to 0 before processing.
func WithZeroAsMissing() Option {
	return func(c *config) {
		c.zeroIsMissing = true
	}
}

// New returns a zero-filled grid with no missing cells.
func New(rows, cols int) (*Grid, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, err
	}

	return &Grid{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromSlice returns a grid holding a copy of data, interpreted row-major.
func FromSlice(rows, cols int, data []float64) (*Grid, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: got %d samples for %dx%d", ErrLengthMismatch, len(data), rows, cols)
	}

	g := &Grid{rows: rows, cols: cols, data: make([]float64, len(data))}
	copy(g.data, data)
	return g, nil
}

// FromSentinel returns a grid holding a copy of data where every sample equal
// to nodata, and every NaN, is marked missing.
func FromSentinel(rows, cols int, data []float64, nodata float64, opts ...Option) (*Grid, error) {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g, err := FromSlice(rows, cols, data)
	if err != nil {
		return nil, err
	}

	for i, v := range g.data {
		if v == nodata || math.IsNaN(v) || (cfg.zeroIsMissing && v == 0) {
			g.markMissing(i)
		}
	}
	return g, nil
}

// FromRows builds a grid from a slice of equally long rows.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidShape)
	}

	cols := len(rows[0])
	g := &Grid{rows: len(rows), cols: cols, data: make([]float64, len(rows)*cols)}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrLengthMismatch, r, len(row), cols)
		}
		copy(g.data[r*cols:], row)
	}
	return g, nil
}

func validateShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	return nil
}

// Dims returns the number of rows and columns.
func (g *Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// Len returns rows*cols.
func (g *Grid) Len() int {
	return len(g.data)
}

// SameShape reports whether g and o have identical dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.rows == o.rows && g.cols == o.cols
}

// At returns the sample at (r, c). It panics if the index is out of range.
func (g *Grid) At(r, c int) float64 {
	return g.data[g.index(r, c)]
}

// Set stores v at (r, c). The missing flag of the cell is left unchanged.
func (g *Grid) Set(r, c int, v float64) {
	g.data[g.index(r, c)] = v
}

// IsMissing reports whether the cell at (r, c) is missing.
func (g *Grid) IsMissing(r, c int) bool {
	i := g.index(r, c)
	return g.missing != nil && g.missing[i]
}

// SetMissing marks or clears the missing flag of the cell at (r, c).
func (g *Grid) SetMissing(r, c int, missing bool) {
	i := g.index(r, c)
	if missing {
		g.markMissing(i)
		return
	}
	if g.missing != nil {
		g.missing[i] = false
	}
}

// Row returns the backing samples of row r. Writes are visible through g.
func (g *Grid) Row(r int) []float64 {
	if r < 0 || r >= g.rows {
		panic(fmt.Sprintf("grid: row %d out of range [0,%d)", r, g.rows))
	}
	return g.data[r*g.cols : (r+1)*g.cols]
}

// RowMask returns the missing flags of row r, or nil when g has no missing cells.
func (g *Grid) RowMask(r int) []bool {
	if r < 0 || r >= g.rows {
		panic(fmt.Sprintf("grid: row %d out of range [0,%d)", r, g.rows))
	}
	if g.missing == nil {
		return nil
	}
	return g.missing[r*g.cols : (r+1)*g.cols]
}

// HasMissing reports whether any cell is missing.
func (g *Grid) HasMissing() bool {
	return g.MissingCount() > 0
}

// MissingCount returns the number of missing cells.
func (g *Grid) MissingCount() int {
	n := 0
	for _, m := range g.missing {
		if m {
			n++
		}
	}
	return n
}

// Values returns the backing row-major sample slice.
// Missing cells hold whatever value they were constructed with.
func (g *Grid) Values() []float64 {
	return g.data
}

// Filled returns a copy of the samples with sentinel written into missing cells.
func (g *Grid) Filled(sentinel float64) []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)
	for i, m := range g.missing {
		if m {
			out[i] = sentinel
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, data: make([]float64, len(g.data))}
	copy(c.data, g.data)
	if g.missing != nil {
		c.missing = make([]bool, len(g.missing))
		copy(c.missing, g.missing)
	}
	return c
}

// Zero sets every sample to 0 and clears the missing mask.
func (g *Grid) Zero() {
	for i := range g.data {
		g.data[i] = 0
	}
	g.missing = nil
}

func (g *Grid) index(r, c int) int {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", r, c, g.rows, g.cols))
	}
	return r*g.cols + c
}

func (g *Grid) markMissing(i int) {
	if g.missing == nil {
		g.missing = make([]bool, len(g.data))
	}
	g.missing[i] = true
}
