package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cwbudde/algo-terrain/grid"
)

// RequireGridNearlyEqual fails t if got and want differ in shape, in their
// missing masks, or if any pair of valid samples differs by more than eps.
func RequireGridNearlyEqual(t *testing.T, got, want *grid.Grid, eps float64) {
	t.Helper()
	if !got.SameShape(want) {
		gr, gc := got.Dims()
		wr, wc := want.Dims()
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}

	if diff := cmp.Diff(MissingMask(want), MissingMask(got)); diff != "" {
		t.Fatalf("missing mask mismatch (-want +got):\n%s", diff)
	}

	// Missing cells compare equal whatever they hold.
	opt := cmpopts.EquateApprox(0, eps)
	if diff := cmp.Diff(want.Filled(0), got.Filled(0), opt); diff != "" {
		t.Fatalf("grid samples differ beyond %v (-want +got):\n%s", eps, diff)
	}
}

// MissingMask returns the missing flags of g in row-major order.
func MissingMask(g *grid.Grid) []bool {
	rows, cols := g.Dims()
	out := make([]bool, 0, rows*cols)
	for r := 0; r < rows; r++ {
		mask := g.RowMask(r)
		if mask == nil {
			out = append(out, make([]bool, cols)...)
			continue
		}
		out = append(out, mask...)
	}
	return out
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxRelDiff returns the largest difference between the samples of got and
// want, relative to max(1, |want|), over cells valid in both grids.
func MaxRelDiff(got, want *grid.Grid) (float64, error) {
	if !got.SameShape(want) {
		gr, gc := got.Dims()
		wr, wc := want.Dims()
		return 0, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", gr, gc, wr, wc)
	}

	rows, cols := want.Dims()
	worst := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if got.IsMissing(r, c) || want.IsMissing(r, c) {
				continue
			}
			w := want.At(r, c)
			if d := math.Abs(got.At(r, c)-w) / math.Max(1, math.Abs(w)); d > worst {
				worst = d
			}
		}
	}
	return worst, nil
}
