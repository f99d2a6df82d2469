package window

import (
	"fmt"
	"math"
	"strings"
)

// Type identifies a neighborhood shape.
type Type int

const (
	// TypeSquare weights every cell of the window with 1.
	TypeSquare Type = iota
	// TypeDisk weights cells within the inscribed circle with 1.
	TypeDisk
	// TypeAnnulus weights cells between an inner radius and the inscribed circle with 1.
	TypeAnnulus
	// TypeGaussian weights cells by exp(-d²/2σ²) of their distance d to the centre.
	TypeGaussian
)

var typeNames = map[Type]string{
	TypeSquare:   "square",
	TypeDisk:     "disk",
	TypeAnnulus:  "annulus",
	TypeGaussian: "gaussian",
}

// String returns the lower-case name of the shape.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a shape name as printed by String.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Types returns all shapes in declaration order.
func Types() []Type {
	return []Type{TypeSquare, TypeDisk, TypeAnnulus, TypeGaussian}
}

// Offset is one nonzero-weight position of a window relative to its centre.
type Offset struct {
	DY, DX int
	Weight float64
}

// Window is an odd-sized, non-negative weight mask whose centre weight is 0.
type Window struct {
	height, width int
	weights       []float64
}

// Option configures window generation.
type Option func(*config)

type config struct {
	sigma    float64
	inner    float64
	hasSigma bool
	hasInner bool
}

// WithSigma sets the standard deviation, in cells, of TypeGaussian.
// The default is a quarter of the window size.
func WithSigma(sigma float64) Option {
	return func(c *config) {
		c.sigma = sigma
		c.hasSigma = true
	}
}

// WithInnerRadius sets the inner radius, in cells, of TypeAnnulus.
// The default is half the outer radius.
func WithInnerRadius(r float64) Option {
	return func(c *config) {
		c.inner = r
		c.hasInner = true
	}
}

// Generate returns a size × size window of the given shape.
func Generate(t Type, size int, opts ...Option) (*Window, error) {
	return GenerateRect(t, size, size, opts...)
}

// GenerateRect returns a height × width window of the given shape. Circular
// shapes use the radius of the shorter axis.
func GenerateRect(t Type, height, width int, opts ...Option) (*Window, error) {
	if err := validateSize(height, width); err != nil {
		return nil, err
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ry, rx := height/2, width/2
	radius := min(ry, rx)

	var weightAt func(dy, dx int) float64
	switch t {
	case TypeSquare:
		weightAt = func(int, int) float64 { return 1 }
	case TypeDisk:
		weightAt = func(dy, dx int) float64 {
			if distance(dy, dx) <= float64(radius) {
				return 1
			}
			return 0
		}
	case TypeAnnulus:
		inner := float64(radius) / 2
		if cfg.hasInner {
			inner = cfg.inner
		}
		if err := validateInnerRadius(inner, radius); err != nil {
			return nil, err
		}
		weightAt = func(dy, dx int) float64 {
			d := distance(dy, dx)
			if d >= inner && d <= float64(radius) {
				return 1
			}
			return 0
		}
	case TypeGaussian:
		sigma := float64(min(height, width)) / 4
		if cfg.hasSigma {
			sigma = cfg.sigma
		}
		if err := validateSigma(sigma); err != nil {
			return nil, err
		}
		weightAt = func(dy, dx int) float64 {
			d := distance(dy, dx)
			return math.Exp(-0.5 * (d / sigma) * (d / sigma))
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	w := &Window{height: height, width: width, weights: make([]float64, height*width)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w.weights[y*width+x] = weightAt(y-ry, x-rx)
		}
	}

	return w.finish()
}

// FromWeights builds a window from an explicit weight matrix. The centre
// weight is forced to 0.
func FromWeights(weights [][]float64) (*Window, error) {
	height := len(weights)
	width := 0
	if height > 0 {
		width = len(weights[0])
	}
	if err := validateSize(height, width); err != nil {
		return nil, err
	}

	w := &Window{height: height, width: width, weights: make([]float64, height*width)}
	for y, row := range weights {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d weights, want %d", ErrRagged, y, len(row), width)
		}
		for x, v := range row {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: weight[%d][%d] = %v", ErrNegativeWeight, y, x, v)
			}
			w.weights[y*width+x] = v
		}
	}

	return w.finish()
}

// finish zeroes the centre weight and rejects windows without any neighbor.
func (w *Window) finish() (*Window, error) {
	ry, rx := w.Radius()
	w.weights[ry*w.width+rx] = 0

	if w.Active() == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyWindow, w.height, w.width)
	}
	return w, nil
}

func distance(dy, dx int) float64 {
	return math.Hypot(float64(dy), float64(dx))
}

// Size returns the window height and width.
func (w *Window) Size() (height, width int) {
	return w.height, w.width
}

// Radius returns the half extents (height/2, width/2).
func (w *Window) Radius() (ry, rx int) {
	return w.height / 2, w.width / 2
}

// At returns the weight at window position (wy, wx), with (0, 0) the top-left cell.
func (w *Window) At(wy, wx int) float64 {
	if wy < 0 || wy >= w.height || wx < 0 || wx >= w.width {
		panic(fmt.Sprintf("window: index (%d,%d) out of range %dx%d", wy, wx, w.height, w.width))
	}
	return w.weights[wy*w.width+wx]
}

// Offsets returns the nonzero-weight positions in row-major window order.
func (w *Window) Offsets() []Offset {
	ry, rx := w.Radius()
	out := make([]Offset, 0, w.Active())
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			v := w.weights[y*w.width+x]
			if v == 0 {
				continue
			}
			out = append(out, Offset{DY: y - ry, DX: x - rx, Weight: v})
		}
	}
	return out
}

// Active returns the number of nonzero weights.
func (w *Window) Active() int {
	n := 0
	for _, v := range w.weights {
		if v != 0 {
			n++
		}
	}
	return n
}

// WeightSum returns the sum of all weights, the neighbor count of a cell
// whose whole window is in bounds and valid.
func (w *Window) WeightSum() float64 {
	s := 0.0
	for _, v := range w.weights {
		s += v
	}
	return s
}

// Weights returns a copy of the weights as rows.
func (w *Window) Weights() [][]float64 {
	out := make([][]float64, w.height)
	for y := range out {
		out[y] = append([]float64(nil), w.weights[y*w.width:(y+1)*w.width]...)
	}
	return out
}
