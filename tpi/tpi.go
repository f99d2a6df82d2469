package tpi

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/neighborhood"
	"github.com/cwbudde/algo-terrain/window"
)

// Errors returned by the compositor.
var (
	ErrNoValidCells = errors.New("tpi: no valid cells")
	ErrZeroVariance = errors.New("tpi: zero variance")
)

// Option configures TPI composition.
type Option func(*config)

type config struct {
	nodata       float64
	aggregateOps []neighborhood.Option
}

// WithNoData sets the value written into missing output cells. Default 0.
func WithNoData(v float64) Option {
	return func(c *config) {
		c.nodata = v
	}
}

// WithAggregateOptions forwards options to the neighborhood aggregator used by Compute.
func WithAggregateOptions(opts ...neighborhood.Option) Option {
	return func(c *config) {
		c.aggregateOps = append(c.aggregateOps, opts...)
	}
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Compose returns g minus the neighborhood mean held in res.
// res must come from aggregating g; Compose panics if the shapes differ.
func Compose(g *grid.Grid, res *neighborhood.Result, opts ...Option) *grid.Grid {
	if res == nil || !g.SameShape(res.Sum) || !g.SameShape(res.Count) {
		panic("tpi: accumulator shape does not match grid")
	}
	cfg := applyOptions(opts)

	rows, cols := g.Dims()
	out, err := grid.New(rows, cols)
	if err != nil {
		panic(err)
	}

	for r := 0; r < rows; r++ {
		src := g.Row(r)
		mask := g.RowMask(r)
		sum := res.Sum.Row(r)
		count := res.Count.Row(r)
		dst := out.Row(r)
		for c := range dst {
			if (mask != nil && mask[c]) || count[c] == 0 {
				dst[c] = cfg.nodata
				out.SetMissing(r, c, true)
				continue
			}
			dst[c] = src[c] - sum[c]/count[c]
		}
	}
	return out
}

// Compute aggregates g under w and composes the TPI grid. The aggregation
// result is returned for callers that also persist the neighbor counts.
func Compute(g *grid.Grid, w *window.Window, opts ...Option) (*grid.Grid, *neighborhood.Result, error) {
	cfg := applyOptions(opts)

	res, err := neighborhood.Aggregate(g, w, cfg.aggregateOps...)
	if err != nil {
		return nil, nil, err
	}
	return Compose(g, res, opts...), res, nil
}

// Standardize rescales the valid cells of t to zero mean and unit standard
// deviation. Missing cells stay missing and keep their value.
func Standardize(t *grid.Grid) (*grid.Grid, error) {
	valid := make([]float64, 0, t.Len())
	rows, _ := t.Dims()
	for r := 0; r < rows; r++ {
		mask := t.RowMask(r)
		for c, v := range t.Row(r) {
			if mask == nil || !mask[c] {
				valid = append(valid, v)
			}
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoValidCells
	}

	mean, std := stat.PopMeanStdDev(valid, nil)
	if std == 0 {
		return nil, fmt.Errorf("%w: all %d valid cells equal %v", ErrZeroVariance, len(valid), mean)
	}

	out := t.Clone()
	for r := 0; r < rows; r++ {
		mask := out.RowMask(r)
		row := out.Row(r)
		for c, v := range row {
			if mask == nil || !mask[c] {
				row[c] = (v - mean) / std
			}
		}
	}
	return out, nil
}
