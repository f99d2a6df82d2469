package neighborhood

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-terrain/internal/testutil"
	"github.com/cwbudde/algo-terrain/window"
)

func BenchmarkAggregate(b *testing.B) {
	sizes := []struct {
		grid   int
		window int
	}{
		{256, 3},
		{256, 15},
		{256, 31},
		{512, 31},
		{512, 61},
	}

	for _, size := range sizes {
		g := testutil.Punch(testutil.Terrain(1, size.grid, size.grid, 100, 2), 1, 0.05)
		w, err := window.Generate(window.TypeSquare, size.window)
		if err != nil {
			b.Fatal(err)
		}

		for _, s := range []Strategy{StrategyOverlap, StrategyFFT} {
			b.Run(fmt.Sprintf("%s/grid=%d_window=%d", s, size.grid, size.window), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_, _ = Aggregate(g, w, WithStrategy(s))
				}
			})
		}
	}
}

func BenchmarkDirect(b *testing.B) {
	g := testutil.Terrain(1, 128, 128, 100, 2)
	w, err := window.Generate(window.TypeSquare, 15)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Direct(g, w)
	}
}
