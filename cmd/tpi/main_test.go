package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-terrain/grid"
	"github.com/cwbudde/algo-terrain/internal/testutil"
	"github.com/cwbudde/algo-terrain/neighborhood"
	"github.com/cwbudde/algo-terrain/raster"
	"github.com/cwbudde/algo-terrain/raster/ascgrid"
	"github.com/cwbudde/algo-terrain/tpi"
	"github.com/cwbudde/algo-terrain/window"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDEM(t *testing.T, dir string, g *grid.Grid, nodata float64) string {
	t.Helper()
	path := filepath.Join(dir, "dem.asc")
	r := &raster.Raster{
		Grid:         g,
		GeoTransform: [6]float64{1000, 5, 0, 2000, 0, -5},
		NoData:       nodata,
		HasNoData:    true,
	}
	require.NoError(t, ascgrid.New().Write(path, r))
	return path
}

func readASC(t *testing.T, path string) *raster.Raster {
	t.Helper()
	r, err := ascgrid.New().Read(path)
	require.NoError(t, err)
	return r
}

func TestComputeSpike(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t, dir, testutil.Spike(5, 5, 10, 100, 2, 2), -9999)
	out := filepath.Join(dir, "tpi.asc")
	counts := filepath.Join(dir, "counts.asc")

	stdout, stderr, err := run(t, "compute", "-w", "3", "-o", out, "--count-output="+counts, "--log-level", "info", dem)
	require.NoError(t, err, stderr)
	assert.Equal(t, out+"\n"+counts+"\n", stdout)
	assert.Contains(t, stderr, "computing TPI")
	assert.Contains(t, stderr, "percent=100")

	r := readASC(t, out)
	assert.Equal(t, [6]float64{1000, 5, 0, 2000, 0, -5}, r.GeoTransform)
	assert.Equal(t, 0.0, r.NoData)
	assert.InDelta(t, 90, r.Grid.At(2, 2), 1e-9)
	assert.InDelta(t, 0, r.Grid.At(0, 4), 1e-9)

	c := readASC(t, counts)
	assert.False(t, c.HasNoData)
	assert.Equal(t, 3.0, c.Grid.At(0, 0))
	assert.Equal(t, 5.0, c.Grid.At(0, 2))
	assert.Equal(t, 8.0, c.Grid.At(2, 2))
}

func TestComputeMatchesLibrary(t *testing.T) {
	dir := t.TempDir()
	g := testutil.Punch(testutil.Terrain(11, 30, 25, 400, 6), 5, 0.1)
	dem := writeDEM(t, dir, g, -9999)
	out := filepath.Join(dir, "tpi.asc")

	_, stderr, err := run(t, "compute", "-w", "7", "--shape", "disk", "--strategy", "auto", "--out-nodata", "-1", "-o", out, dem)
	require.NoError(t, err, stderr)

	in := readASC(t, dem)
	w, err := window.Generate(window.TypeDisk, 7)
	require.NoError(t, err)
	want, _, err := tpi.Compute(in.Grid, w, tpi.WithNoData(-1), tpi.WithAggregateOptions(neighborhood.WithStrategy(neighborhood.StrategyOverlap)))
	require.NoError(t, err)

	got := readASC(t, out)
	assert.Equal(t, -1.0, got.NoData)
	testutil.RequireGridNearlyEqual(t, got.Grid, want, 1e-6)
}

func TestComputeZeroAsNoData(t *testing.T) {
	dir := t.TempDir()
	g, err := grid.FromRows([][]float64{
		{0, 0, 0},
		{0, 9, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	dem := writeDEM(t, dir, g, -9999)

	out := filepath.Join(dir, "plain.asc")
	_, stderr, err := run(t, "compute", "-o", out, dem)
	require.NoError(t, err, stderr)
	assert.Equal(t, 9.0, readASC(t, out).Grid.At(1, 1))

	out = filepath.Join(dir, "legacy.asc")
	_, stderr, err = run(t, "compute", "--zero-nodata", "--out-nodata", "-5", "-o", out, dem)
	require.NoError(t, err, stderr)
	r := readASC(t, out)
	assert.Equal(t, 9, r.Grid.MissingCount())
	assert.Equal(t, -5.0, r.Grid.Values()[4])
}

func TestComputeStandardize(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t, dir, testutil.Terrain(3, 12, 12, 50, 5), -9999)
	out := filepath.Join(dir, "z.asc")

	_, stderr, err := run(t, "compute", "--standardize", "-o", out, dem)
	require.NoError(t, err, stderr)

	r := readASC(t, out)
	var sum float64
	for _, v := range r.Grid.Values() {
		sum += v
	}
	assert.InDelta(t, 0, sum/float64(r.Grid.Len()), 1e-9)
}

func TestComputeConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t, dir, testutil.Terrain(8, 20, 20, 100, 3), -9999)
	cfgPath := filepath.Join(dir, "tpi.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"window_size": 9, "log_format": "json"}`), 0o600))
	t.Setenv("TPI_WINDOW_SIZE", "5")

	out := filepath.Join(dir, "tpi.asc")

	_, stderr, err := run(t, "compute", "--config", cfgPath, "-o", out, dem)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, `"window":5`)
	assert.Contains(t, stderr, `"msg":"computing TPI"`)
}

func TestComputeErrors(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t, dir, testutil.Constant(5, 5, 1), -9999)
	out := filepath.Join(dir, "tpi.asc")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"even window", []string{"compute", "-w", "4", "-o", out, dem}, "invalid window size"},
		{"window too large", []string{"compute", "-w", "7", "-o", out, dem}, "window larger than grid"},
		{"unknown strategy", []string{"compute", "--strategy", "gpu", "-o", out, dem}, "invalid strategy"},
		{"missing input", []string{"compute", "-o", out, filepath.Join(dir, "nope.asc")}, "nope.asc"},
		{"no args", []string{"compute"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "failed run must not write output")
		})
	}
}

func TestValidData(t *testing.T) {
	dir := t.TempDir()
	g, err := grid.FromRows([][]float64{{1, -9999, 3}, {-9999, 5, 6}})
	require.NoError(t, err)
	dem := writeDEM(t, dir, g, -9999)
	mask := filepath.Join(dir, "mask.asc")

	stdout, stderr, err := run(t, "validdata", "--mask-output", mask, dem)
	require.NoError(t, err, stderr)
	assert.Equal(t, "valid=4 total=6 fraction=0.666667\n", stdout)

	m := readASC(t, mask)
	assert.Equal(t, []float64{1, 0, 1, 0, 1, 1}, m.Grid.Values())
}

func TestValidDataMaskIgnoresInputNoData(t *testing.T) {
	dir := t.TempDir()
	g, err := grid.FromRows([][]float64{{5, 1, 7}, {1, 9, 4}})
	require.NoError(t, err)
	dem := writeDEM(t, dir, g, 1)
	mask := filepath.Join(dir, "mask.asc")

	stdout, stderr, err := run(t, "validdata", "--mask-output="+mask, dem)
	require.NoError(t, err, stderr)
	assert.Equal(t, "valid=4 total=6 fraction=0.666667\n", stdout)

	m := readASC(t, mask)
	assert.False(t, m.HasNoData)
	assert.Equal(t, 0, m.Grid.MissingCount())
	assert.Equal(t, []float64{1, 0, 1, 0, 1, 1}, m.Grid.Values())
}

func TestComputeRemovesOutputsOnFailure(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t, dir, testutil.Constant(5, 5, 1), -9999)
	out := filepath.Join(dir, "tpi.asc")
	counts := filepath.Join(dir, "missing", "counts.asc")

	stdout, _, err := run(t, "compute", "-o", out, "--count-output="+counts, dem)
	require.Error(t, err)
	assert.Empty(t, stdout)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "TPI output must be removed when the count write fails")
}

func TestBareOutputFlagsDerivePaths(t *testing.T) {
	dem := filepath.Join("data", "site.asc")

	compute := newComputeCmd()
	require.NoError(t, compute.ParseFlags([]string{"--count-output", "-w", "5"}))
	got := outputFlag(compute, flagCountOutput, func() string { return raster.CountOutputPath(dem, 5) })
	assert.Equal(t, filepath.Join("data", "site_count5.tif"), got)

	compute = newComputeCmd()
	require.NoError(t, compute.ParseFlags([]string{"--count-output=c.asc"}))
	assert.Equal(t, "c.asc", outputFlag(compute, flagCountOutput, func() string { return "" }))

	valid := newValidDataCmd()
	require.NoError(t, valid.ParseFlags([]string{"--mask-output"}))
	got = outputFlag(valid, flagMaskOutput, func() string { return raster.ValidMaskOutputPath(dem) })
	assert.Equal(t, filepath.Join("data", "site_valid.tif"), got)

	valid = newValidDataCmd()
	require.NoError(t, valid.ParseFlags(nil))
	assert.Empty(t, outputFlag(valid, flagMaskOutput, func() string { return "unused" }))
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	g, err := grid.FromRows([][]float64{{1, 2}, {-9999, 7}})
	require.NoError(t, err)
	dem := writeDEM(t, dir, g, -9999)

	stdout, stderr, err := run(t, "stats", dem)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "3 of 4")
	assert.Contains(t, stdout, "max    7")
	assert.Contains(t, stdout, "at (1,1)")
	assert.Contains(t, stdout, "p50")
}

func TestWindowCommand(t *testing.T) {
	stdout, _, err := run(t, "window", "-w", "5", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2+len(window.Types()))
	assert.True(t, strings.HasPrefix(lines[2], "square"))
	assert.Contains(t, lines[2], "24.0000")

	stdout, _, err = run(t, "window", "-w", "3", "--weights")
	require.NoError(t, err)
	assert.Contains(t, stdout, " 1.000  0.000  1.000")

	_, _, err = run(t, "window", "-w", "3", "--shape", "blob")
	require.Error(t, err)
}

func TestDebugLogsRuntime(t *testing.T) {
	_, stderr, err := run(t, "window", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=runtime")
	assert.Contains(t, stderr, "codecs=")
}
