// Package preview renders grids as heat map images for quick inspection.
//
// Values are stretched between two percentiles of the valid cells and
// clamped; missing cells are drawn transparent. TPI grids read best with the
// diverging palette, which centres the colour ramp on zero.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/stats/summary"
)

// ErrInvalidClip is returned for a clip range outside 0..100 or inverted.
var ErrInvalidClip = errors.New("preview: invalid clip percentiles")

// Palette selects the colour ramp.
type Palette int

const (
	// PaletteDiverging is a blue-to-red ramp symmetric around zero.
	PaletteDiverging Palette = iota
	// PaletteHeat is a sequential ramp for elevations and counts.
	PaletteHeat
)

const paletteColors = 255

// Option configures rendering.
type Option func(*config)

type config struct {
	lo, hi        float64
	palette       Palette
	title         string
	width, height vg.Length
}

// WithClip sets the lower and upper stretch percentiles (0..100).
// Default 2 and 98.
func WithClip(lo, hi float64) Option {
	return func(c *config) {
		c.lo, c.hi = lo, hi
	}
}

// WithPalette selects the colour ramp. Default PaletteDiverging.
func WithPalette(p Palette) Option {
	return func(c *config) {
		c.palette = p
	}
}

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithSize sets the image size. Default 8×8 inches.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

func applyOptions(opts []Option) config {
	cfg := config{lo: 2, hi: 98, width: 8 * vg.Inch, height: 8 * vg.Inch}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Render draws g and saves it to path. The image format follows the file
// extension (.png, .svg, .pdf, ...).
func Render(g *grid.Grid, path string, opts ...Option) error {
	cfg := applyOptions(opts)
	p, err := newPlot(g, cfg)
	if err != nil {
		return err
	}
	return p.Save(cfg.width, cfg.height, path)
}

// Plot returns the heat map plot of g without saving it.
func Plot(g *grid.Grid, opts ...Option) (*plot.Plot, error) {
	return newPlot(g, applyOptions(opts))
}

func newPlot(g *grid.Grid, cfg config) (*plot.Plot, error) {
	if cfg.lo < 0 || cfg.hi > 100 || cfg.lo > cfg.hi {
		return nil, fmt.Errorf("%w: %v..%v", ErrInvalidClip, cfg.lo, cfg.hi)
	}
	lo, hi, err := Stretch(g, cfg.lo, cfg.hi, cfg.palette == PaletteDiverging)
	if err != nil {
		return nil, err
	}

	var pal palette.Palette
	switch cfg.palette {
	case PaletteHeat:
		pal = palette.Heat(paletteColors, 1)
	default:
		pal = palette.Radial(paletteColors, palette.Blue, palette.Red, 1)
	}

	h := plotter.NewHeatMap(gridXYZ{g: g, lo: lo, hi: hi}, pal)
	h.Min, h.Max = lo, hi
	h.NaN = color.Transparent
	h.Rasterized = true

	p := plot.New()
	p.Title.Text = cfg.title
	p.HideAxes()
	p.Add(h)
	return p, nil
}

// Stretch returns the value range drawn for g: the lo and hi percentiles of
// its valid cells, made symmetric around zero when centred is set. The range
// is never empty.
func Stretch(g *grid.Grid, lo, hi float64, centred bool) (float64, float64, error) {
	q, err := summary.Percentiles(g, lo/100, hi/100)
	if err != nil {
		return 0, 0, err
	}
	low, high := q[0], q[1]
	if centred {
		m := math.Max(math.Abs(low), math.Abs(high))
		low, high = -m, m
	}
	if low == high {
		low, high = low-0.5, high+0.5
	}
	return low, high, nil
}

// gridXYZ adapts a grid to plotter.GridXYZ. Plot rows grow upwards, raster
// rows downwards.
type gridXYZ struct {
	g      *grid.Grid
	lo, hi float64
}

func (m gridXYZ) Dims() (c, r int) {
	rows, cols := m.g.Dims()
	return cols, rows
}

func (m gridXYZ) Z(c, r int) float64 {
	rows, _ := m.g.Dims()
	row := rows - 1 - r
	if m.g.IsMissing(row, c) {
		return math.NaN()
	}
	return math.Min(math.Max(m.g.At(row, c), m.lo), m.hi)
}

func (m gridXYZ) X(c int) float64 { return float64(c) }
func (m gridXYZ) Y(r int) float64 { return float64(r) }
