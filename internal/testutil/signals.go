package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-terrain/grid"
)

// Constant returns a rows × cols grid filled with value.
func Constant(rows, cols int, value float64) *grid.Grid {
	g := mustNew(rows, cols)
	data := g.Values()
	for i := range data {
		data[i] = value
	}
	return g
}

// Spike returns a constant grid with a single cell at (r, c) set to peak.
func Spike(rows, cols int, base, peak float64, r, c int) *grid.Grid {
	g := Constant(rows, cols, base)
	g.Set(r, c, peak)
	return g
}

// Ramp returns a plane rising by dy per row and dx per column from base.
func Ramp(rows, cols int, base, dy, dx float64) *grid.Grid {
	g := mustNew(rows, cols)
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		for c := range row {
			row[c] = base + dy*float64(r) + dx*float64(c)
		}
	}
	return g
}

// Terrain returns deterministic rolling terrain: a few sinusoidal ridges plus
// white noise of the given amplitude, generated with a fixed seed.
func Terrain(seed int64, rows, cols int, base, amplitude float64) *grid.Grid {
	g := mustNew(rows, cols)
	rng := rand.New(rand.NewSource(seed))
	for r := 0; r < rows; r++ {
		row := g.Row(r)
		for c := range row {
			ridge := 20*math.Sin(float64(r)/7) + 15*math.Cos(float64(c)/5)
			row[c] = base + ridge + (rng.Float64()*2-1)*amplitude
		}
	}
	return g
}

// Punch marks a deterministic random fraction of the cells of g missing and
// returns g.
func Punch(g *grid.Grid, seed int64, fraction float64) *grid.Grid {
	rows, cols := g.Dims()
	rng := rand.New(rand.NewSource(seed))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < fraction {
				g.SetMissing(r, c, true)
			}
		}
	}
	return g
}

func mustNew(rows, cols int) *grid.Grid {
	g, err := grid.New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}
