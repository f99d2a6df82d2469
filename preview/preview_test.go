package preview

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/internal/testutil"
	"github.com/cwbudde/algo-terrain/stats/summary"
)

func TestGridXYZFlipsRows(t *testing.T) {
	g, err := grid.FromSentinel(2, 3, []float64{1, 2, 3, 4, -1, 6}, -1)
	require.NoError(t, err)
	m := gridXYZ{g: g, lo: 2, hi: 5}

	c, r := m.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)

	// Plot row 0 is the bottom raster row.
	assert.Equal(t, 4.0, m.Z(0, 0))
	assert.True(t, math.IsNaN(m.Z(1, 0)))
	assert.Equal(t, 5.0, m.Z(2, 0), "clamped to hi")
	assert.Equal(t, 2.0, m.Z(0, 1), "clamped to lo")
	assert.Equal(t, 2.0, m.X(2))
	assert.Equal(t, 1.0, m.Y(1))
}

func TestStretch(t *testing.T) {
	g := testutil.Ramp(10, 10, -20, 1, 0.5)

	lo, hi, err := Stretch(g, 0, 100, false)
	require.NoError(t, err)
	assert.Equal(t, -20.0, lo)
	assert.Equal(t, -6.5, hi)

	lo, hi, err = Stretch(g, 0, 100, true)
	require.NoError(t, err)
	assert.Equal(t, -20.0, lo)
	assert.Equal(t, 20.0, hi)

	lo, hi, err = Stretch(testutil.Constant(3, 3, 0), 2, 98, true)
	require.NoError(t, err)
	assert.Less(t, lo, hi)

	empty, _ := grid.FromSentinel(1, 1, []float64{0}, 0)
	_, _, err = Stretch(empty, 2, 98, false)
	require.ErrorIs(t, err, summary.ErrNoValidCells)
}

func TestRenderWritesPNG(t *testing.T) {
	g := testutil.Punch(testutil.Terrain(2, 32, 48, 0, 5), 1, 0.1)
	path := filepath.Join(t.TempDir(), "tpi.png")

	require.NoError(t, Render(g, path, WithTitle("TPI"), WithSize(200, 150)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestPlotOptions(t *testing.T) {
	g := testutil.Terrain(4, 8, 8, 100, 2)

	p, err := Plot(g, WithPalette(PaletteHeat), WithClip(5, 95), WithTitle("dem"))
	require.NoError(t, err)
	assert.Equal(t, "dem", p.Title.Text)

	_, err = Plot(g, WithClip(60, 40))
	require.ErrorIs(t, err, ErrInvalidClip)
	_, err = Plot(g, WithClip(-1, 50))
	require.ErrorIs(t, err, ErrInvalidClip)
}
