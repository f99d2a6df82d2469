package grid

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FromDense copies a gonum matrix into a grid. NaN entries are marked missing.
func FromDense(m *mat.Dense) (*Grid, error) {
	rows, cols := m.Dims()
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		mat.Row(g.Row(r), r, m)
	}
	for i, v := range g.data {
		if math.IsNaN(v) {
			g.markMissing(i)
		}
	}
	return g, nil
}

// Dense copies g into a new gonum matrix with missing cells set to NaN.
func (g *Grid) Dense() *mat.Dense {
	return mat.NewDense(g.rows, g.cols, g.Filled(math.NaN()))
}
