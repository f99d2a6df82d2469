package neighborhood

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/window"
)

// plane2D runs separable 2-D FFTs over a p × q row-major complex plane.
type plane2D struct {
	p, q    int
	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]
	column  []complex128
}

func newPlane2D(p, q int) (*plane2D, error) {
	rowPlan, err := algofft.NewPlan64(q)
	if err != nil {
		return nil, fmt.Errorf("neighborhood: failed to create row FFT plan: %w", err)
	}
	colPlan, err := algofft.NewPlan64(p)
	if err != nil {
		return nil, fmt.Errorf("neighborhood: failed to create column FFT plan: %w", err)
	}

	return &plane2D{
		p:       p,
		q:       q,
		rowPlan: rowPlan,
		colPlan: colPlan,
		column:  make([]complex128, p),
	}, nil
}

// forward transforms data in place. Only the first liveRows rows may be
// nonzero; the remaining rows are zero and need no row transform.
func (t *plane2D) forward(data []complex128, liveRows int) error {
	for r := 0; r < liveRows; r++ {
		row := data[r*t.q : (r+1)*t.q]
		if err := t.rowPlan.Forward(row, row); err != nil {
			return fmt.Errorf("neighborhood: forward row FFT failed: %w", err)
		}
	}
	return t.columns(data, t.colPlan.Forward)
}

// inverse transforms data in place. Only the first keepRows rows of the
// spatial result are needed, so later rows skip their row transform.
func (t *plane2D) inverse(data []complex128, keepRows int) error {
	if err := t.columns(data, t.colPlan.Inverse); err != nil {
		return err
	}
	for r := 0; r < keepRows; r++ {
		row := data[r*t.q : (r+1)*t.q]
		if err := t.rowPlan.Inverse(row, row); err != nil {
			return fmt.Errorf("neighborhood: inverse row FFT failed: %w", err)
		}
	}
	return nil
}

func (t *plane2D) columns(data []complex128, transform func(dst, src []complex128) error) error {
	for c := 0; c < t.q; c++ {
		for r := 0; r < t.p; r++ {
			t.column[r] = data[r*t.q+c]
		}
		if err := transform(t.column, t.column); err != nil {
			return fmt.Errorf("neighborhood: column FFT failed: %w", err)
		}
		for r := 0; r < t.p; r++ {
			data[r*t.q+c] = t.column[r]
		}
	}
	return nil
}

// accumulateFFT computes Sum and Count as circular convolutions of the
// zero-filled samples and of the validity indicator with the flipped window.
// The plane is padded by the window radius so no neighbor wraps around.
func accumulateFFT(res *Result, g *grid.Grid, w *window.Window, progress ProgressFunc) error {
	rows, cols := g.Dims()
	ry, rx := w.Radius()
	p := nextPowerOf2(rows + ry)
	q := nextPowerOf2(cols + rx)

	plane, err := newPlane2D(p, q)
	if err != nil {
		return err
	}

	values := make([]complex128, p*q)
	valid := make([]complex128, p*q)
	for r := 0; r < rows; r++ {
		samples := g.Row(r)
		mask := g.RowMask(r)
		for c, v := range samples {
			if mask != nil && mask[c] {
				continue
			}
			values[r*q+c] = complex(v, 0)
			valid[r*q+c] = 1
		}
	}

	// Sum[r,c] = Σ w(dy,dx)·v[r+dy,c+dx] is a correlation; placing each
	// weight at (-dy,-dx) turns it into a convolution.
	offsets := w.Offsets()
	kernel := make([]complex128, p*q)
	integral := true
	for _, o := range offsets {
		kr := ((-o.DY)%p + p) % p
		kc := ((-o.DX)%q + q) % q
		kernel[kr*q+kc] = complex(o.Weight, 0)
		if o.Weight != math.Trunc(o.Weight) {
			integral = false
		}
	}

	const passes = 5
	step := 0
	report := func() {
		step++
		if progress != nil {
			progress(step, passes)
		}
	}

	if err := plane.forward(kernel, p); err != nil {
		return err
	}
	report()
	if err := plane.forward(values, rows); err != nil {
		return err
	}
	report()
	if err := plane.forward(valid, rows); err != nil {
		return err
	}
	report()

	for i, k := range kernel {
		values[i] *= k
		valid[i] *= k
	}

	if err := plane.inverse(values, rows); err != nil {
		return err
	}
	report()
	if err := plane.inverse(valid, rows); err != nil {
		return err
	}
	report()

	// Counts of integral windows are exact integers; otherwise only the
	// rounding noise around zero is removed.
	snap := 1e-9 * w.WeightSum()
	for r := 0; r < rows; r++ {
		sumRow := res.Sum.Row(r)
		countRow := res.Count.Row(r)
		for c := 0; c < cols; c++ {
			n := real(valid[r*q+c])
			if integral {
				n = math.Round(n)
			} else if math.Abs(n) < snap {
				n = 0
			}
			if n <= 0 {
				countRow[c] = 0
				sumRow[c] = 0
				continue
			}
			countRow[c] = n
			sumRow[c] = real(values[r*q+c])
		}
	}
	return nil
}
