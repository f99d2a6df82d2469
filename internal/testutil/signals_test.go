package testutil

import "testing"

func TestTerrainDeterministic(t *testing.T) {
	a := Terrain(7, 16, 12, 100, 2)
	b := Terrain(7, 16, 12, 100, 2)
	RequireGridNearlyEqual(t, a, b, 0)
	RequireFinite(t, a.Values())
}

func TestSpikeAndRamp(t *testing.T) {
	s := Spike(5, 5, 10, 100, 2, 2)
	if s.At(2, 2) != 100 || s.At(0, 0) != 10 {
		t.Errorf("unexpected spike grid: centre=%v corner=%v", s.At(2, 2), s.At(0, 0))
	}

	r := Ramp(3, 4, 1, 10, 1)
	if r.At(2, 3) != 24 {
		t.Errorf("Ramp At(2,3) = %v, want 24", r.At(2, 3))
	}
}

func TestPunch(t *testing.T) {
	g := Punch(Constant(20, 20, 1), 3, 0.25)
	n := g.MissingCount()
	if n == 0 || n == 400 {
		t.Errorf("MissingCount = %d, want a partial fraction", n)
	}
	if Punch(Constant(4, 4, 1), 3, 0).HasMissing() {
		t.Error("fraction 0 must not punch any cell")
	}
}
