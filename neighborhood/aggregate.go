package neighborhood

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/window"
)

// Errors returned by the aggregator.
var (
	ErrNilGrid         = errors.New("neighborhood: nil grid")
	ErrNilWindow       = errors.New("neighborhood: nil window")
	ErrWindowTooLarge  = errors.New("neighborhood: window larger than grid")
	ErrShapeMismatch   = errors.New("neighborhood: accumulator shape mismatch")
	ErrUnknownStrategy = errors.New("neighborhood: unknown strategy")
)

// Strategy selects how the neighbor sums are accumulated.
type Strategy int

const (
	// StrategyOverlap applies every nonzero window offset as one bulk
	// shifted add over the whole grid. Exact; memory independent of window size.
	StrategyOverlap Strategy = iota

	// StrategyFFT computes the same sums by 2-D FFT convolution on a
	// zero-padded plane. Results match StrategyOverlap within rounding.
	StrategyFFT

	// StrategyAuto picks the cheaper of the two for the given grid and window.
	// FFT trades memory for speed: it holds three complex planes padded to
	// powers of two, so auto only picks it while they fit in FFTMemoryLimit.
	StrategyAuto
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyOverlap:
		return "overlap"
	case StrategyFFT:
		return "fft"
	case StrategyAuto:
		return "auto"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy resolves a strategy name as printed by String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "overlap", "":
		return StrategyOverlap, nil
	case "fft":
		return StrategyFFT, nil
	case "auto":
		return StrategyAuto, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// ProgressFunc reports completed passes out of total.
type ProgressFunc func(done, total int)

// Option configures aggregation.
type Option func(*config)

type config struct {
	strategy Strategy
	progress ProgressFunc
}

// WithStrategy selects the accumulation strategy. The default is StrategyOverlap.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithProgress registers a callback invoked after every accumulation pass.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// Result holds the accumulator grids of one aggregation. Both grids have the
// shape of the input and no missing cells.
type Result struct {
	// Sum is the weighted sum of valid in-bounds neighbors.
	Sum *grid.Grid
	// Count is the sum of weights of the same neighbors.
	Count *grid.Grid
}

// NewResult returns zeroed accumulators for a rows × cols grid.
func NewResult(rows, cols int) (*Result, error) {
	sum, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}
	count, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}
	return &Result{Sum: sum, Count: count}, nil
}

// Mean returns Sum/Count at (r, c), or false when no neighbor contributed.
func (res *Result) Mean(r, c int) (float64, bool) {
	n := res.Count.At(r, c)
	if n == 0 {
		return 0, false
	}
	return res.Sum.At(r, c) / n, true
}

// Aggregate computes, for every cell of g, the weighted sum and the weight
// count of its valid neighbors under w.
func Aggregate(g *grid.Grid, w *window.Window, opts ...Option) (*Result, error) {
	if err := validate(g, w); err != nil {
		return nil, err
	}

	rows, cols := g.Dims()
	res, err := NewResult(rows, cols)
	if err != nil {
		return nil, err
	}

	if err := AggregateTo(res, g, w, opts...); err != nil {
		return nil, err
	}
	return res, nil
}

// AggregateTo is Aggregate writing into caller-supplied accumulators, which
// are reset first. res.Sum and res.Count must have the shape of g.
func AggregateTo(res *Result, g *grid.Grid, w *window.Window, opts ...Option) error {
	if err := validate(g, w); err != nil {
		return err
	}
	if res == nil || !g.SameShape(res.Sum) || !g.SameShape(res.Count) {
		return ErrShapeMismatch
	}

	cfg := config{strategy: StrategyOverlap}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	strategy := cfg.strategy
	if strategy == StrategyAuto {
		rows, cols := g.Dims()
		strategy = ChooseStrategy(rows, cols, w)
	}

	res.Sum.Zero()
	res.Count.Zero()

	switch strategy {
	case StrategyOverlap:
		accumulateOverlap(res, g, w, cfg.progress)
		return nil
	case StrategyFFT:
		return accumulateFFT(res, g, w, cfg.progress)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}
}

func validate(g *grid.Grid, w *window.Window) error {
	if g == nil {
		return ErrNilGrid
	}
	if w == nil {
		return ErrNilWindow
	}

	rows, cols := g.Dims()
	height, width := w.Size()
	if height > rows || width > cols {
		return fmt.Errorf("%w: window %dx%d, grid %dx%d", ErrWindowTooLarge, height, width, rows, cols)
	}
	return nil
}

// FFTMemoryLimit caps the bytes of padded complex planes StrategyAuto may
// allocate for the FFT strategy. Larger grids always use StrategyOverlap.
const FFTMemoryLimit = 1 << 30

// fftPlanes is the number of p × q complex128 planes the FFT strategy holds.
const fftPlanes = 3

// fftCostFactor approximates the number of complex FFT passes, per padded
// cell and log2 of the plane size, spent by the FFT strategy.
const fftCostFactor = 12

// ChooseStrategy returns the strategy StrategyAuto resolves to: overlap when
// the number of active offsets times grid cells is below the estimated FFT
// cost or when the FFT planes would exceed FFTMemoryLimit, FFT otherwise.
func ChooseStrategy(rows, cols int, w *window.Window) Strategy {
	ry, rx := w.Radius()
	plane := float64(nextPowerOf2(rows+ry) * nextPowerOf2(cols+rx))
	if fftPlanes*16*plane > FFTMemoryLimit {
		return StrategyOverlap
	}

	overlapCost := float64(w.Active()) * float64(rows*cols)
	fftCost := fftCostFactor * plane * math.Log2(plane)
	if overlapCost <= fftCost {
		return StrategyOverlap
	}
	return StrategyFFT
}

// accumulateOverlap adds the contribution of every nonzero window offset.
func accumulateOverlap(res *Result, g *grid.Grid, w *window.Window, progress ProgressFunc) {
	rows, cols := g.Dims()
	missing := missingColumns(g)
	scratch := make([]float64, cols)
	weights := make([]float64, cols)

	offsets := w.Offsets()
	for i, o := range offsets {
		src, dst := Views(o.DY, o.DX, rows, cols)
		if !src.Empty() {
			accumulateOffset(res, g, o, src, dst, missing, scratch, weights)
		}
		if progress != nil {
			progress(i+1, len(offsets))
		}
	}
}

// accumulateOffset applies one offset row by row: the scaled source row and
// the weight row, both zeroed where the source cell is missing, are added to
// the sum and the count. Counts are only ever incremented, so a valid neighbor
// with a tiny weight never cancels out of Count while staying in Sum.
func accumulateOffset(res *Result, g *grid.Grid, o window.Offset, src, dst View, missing [][]int, scratch, weights []float64) {
	n := dst.Cols.Len()
	tmp := scratch[:n]
	wrow := weights[:n]

	for k := 0; k < dst.Rows.Len(); k++ {
		sr := src.Rows.Start + k
		dr := dst.Rows.Start + k

		srcRow := g.Row(sr)[src.Cols.Start:src.Cols.Stop]
		sumRow := res.Sum.Row(dr)[dst.Cols.Start:dst.Cols.Stop]
		countRow := res.Count.Row(dr)[dst.Cols.Start:dst.Cols.Stop]
		holes := columnsIn(missing[sr], src.Cols)

		if o.Weight == 1 {
			copy(tmp, srcRow)
		} else {
			vecmath.ScaleBlock(tmp, srcRow, o.Weight)
		}
		for j := range wrow {
			wrow[j] = o.Weight
		}
		for _, c := range holes {
			tmp[c-src.Cols.Start] = 0
			wrow[c-src.Cols.Start] = 0
		}
		vecmath.AddBlockInPlace(sumRow, tmp)
		vecmath.AddBlockInPlace(countRow, wrow)
	}
}

// missingColumns lists, per row, the ascending column indices of missing cells.
func missingColumns(g *grid.Grid) [][]int {
	rows, _ := g.Dims()
	out := make([][]int, rows)
	for r := 0; r < rows; r++ {
		for c, m := range g.RowMask(r) {
			if m {
				out[r] = append(out[r], c)
			}
		}
	}
	return out
}

// columnsIn returns the sub-slice of the sorted columns that fall inside s.
func columnsIn(cols []int, s Span) []int {
	lo := 0
	for lo < len(cols) && cols[lo] < s.Start {
		lo++
	}
	hi := lo
	for hi < len(cols) && cols[hi] < s.Stop {
		hi++
	}
	return cols[lo:hi]
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
