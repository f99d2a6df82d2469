package neighborhood

import (
	"testing"

	"github.com/cwbudde/algo-terrain/internal/testutil"
	"github.com/cwbudde/algo-terrain/window"
)

func TestFFTMatchesOverlap(t *testing.T) {
	disk, err := window.Generate(window.TypeDisk, 11)
	if err != nil {
		t.Fatal(err)
	}
	gaussian, err := window.Generate(window.TypeGaussian, 9, window.WithSigma(3))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		w        *window.Window
		holes    float64
		countEps float64
	}{
		{"square", squareWindow(t, 9), 0, 0},
		{"square with holes", squareWindow(t, 7), 0.2, 0},
		{"disk with holes", disk, 0.1, 0},
		{"gaussian with holes", gaussian, 0.15, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.Punch(testutil.Terrain(61, 37, 29, 300, 5), 12, tt.holes)

			want, err := Aggregate(g, tt.w, WithStrategy(StrategyOverlap))
			if err != nil {
				t.Fatalf("overlap: %v", err)
			}
			got, err := Aggregate(g, tt.w, WithStrategy(StrategyFFT))
			if err != nil {
				t.Fatalf("fft: %v", err)
			}

			testutil.RequireGridNearlyEqual(t, got.Count, want.Count, tt.countEps)
			testutil.RequireGridNearlyEqual(t, got.Sum, want.Sum, 1e-6)

			d, err := testutil.MaxRelDiff(got.Sum, want.Sum)
			if err != nil {
				t.Fatal(err)
			}
			if d > 1e-9 {
				t.Errorf("relative sum error %g exceeds 1e-9", d)
			}
		})
	}
}

func TestFFTAllMissingNeighborhood(t *testing.T) {
	g := testutil.Constant(6, 6, 4)
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			if r+c > 0 {
				g.SetMissing(r, c, true)
			}
		}
	}

	res, err := Aggregate(g, squareWindow(t, 3), WithStrategy(StrategyFFT))
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Count.At(0, 0); got != 0 {
		t.Errorf("Count(0,0) = %v, want 0", got)
	}
	if got := res.Sum.At(0, 0); got != 0 {
		t.Errorf("Sum(0,0) = %v, want 0", got)
	}
	if got := res.Count.At(5, 5); got != 0 {
		t.Errorf("Count(5,5) = %v, want 0", got)
	}
	if mean, ok := res.Mean(1, 0); !ok || mean < 4-1e-9 || mean > 4+1e-9 {
		t.Errorf("Mean(1,0) = %v,%v, want 4", mean, ok)
	}
}

func TestFFTProgress(t *testing.T) {
	g := testutil.Constant(8, 8, 1)
	var last, total int
	_, err := Aggregate(g, squareWindow(t, 3), WithStrategy(StrategyFFT), WithProgress(func(done, n int) {
		last, total = done, n
	}))
	if err != nil {
		t.Fatal(err)
	}
	if last != total || total == 0 {
		t.Errorf("progress ended at %d/%d", last, total)
	}
}
