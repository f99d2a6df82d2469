package neighborhood

import (
	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/window"
)

// Direct computes the same Result as Aggregate with a literal per-cell loop
// over the window. It costs O(cells × window area) and serves as the
// reference the bulk strategies are checked against.
func Direct(g *grid.Grid, w *window.Window) (*Result, error) {
	if err := validate(g, w); err != nil {
		return nil, err
	}

	rows, cols := g.Dims()
	res, err := NewResult(rows, cols)
	if err != nil {
		return nil, err
	}

	offsets := w.Offsets()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum, count float64
			for _, o := range offsets {
				sr, sc := r+o.DY, c+o.DX
				if sr < 0 || sr >= rows || sc < 0 || sc >= cols {
					continue
				}
				if g.IsMissing(sr, sc) {
					continue
				}
				sum += o.Weight * g.At(sr, sc)
				count += o.Weight
			}
			res.Sum.Set(r, c, sum)
			res.Count.Set(r, c, count)
		}
	}
	return res, nil
}
