package neighborhood

import "testing"

func TestAxisSpans(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		size     int
		src, dst Span
	}{
		{"zero", 0, 5, Span{0, 5}, Span{0, 5}},
		{"positive", 2, 5, Span{2, 5}, Span{0, 3}},
		{"negative", -2, 5, Span{0, 3}, Span{2, 5}},
		{"edge of range", 4, 5, Span{4, 5}, Span{0, 1}},
		{"out of range", 5, 5, Span{}, Span{}},
		{"negative out of range", -7, 5, Span{}, Span{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := axisSpans(tt.offset, tt.size)
			if src != tt.src || dst != tt.dst {
				t.Errorf("axisSpans(%d,%d) = %+v,%+v, want %+v,%+v",
					tt.offset, tt.size, src, dst, tt.src, tt.dst)
			}
			if src.Len() != dst.Len() {
				t.Errorf("span lengths differ: %d vs %d", src.Len(), dst.Len())
			}
		})
	}
}

func TestViewsPairCells(t *testing.T) {
	const rows, cols = 6, 4
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			src, dst := Views(dy, dx, rows, cols)
			if src.Empty() {
				continue
			}
			for k := 0; k < dst.Rows.Len(); k++ {
				for j := 0; j < dst.Cols.Len(); j++ {
					r, c := dst.Rows.Start+k, dst.Cols.Start+j
					sr, sc := src.Rows.Start+k, src.Cols.Start+j
					if sr != r+dy || sc != c+dx {
						t.Fatalf("offset (%d,%d): dst (%d,%d) paired with (%d,%d)", dy, dx, r, c, sr, sc)
					}
					if sr < 0 || sr >= rows || sc < 0 || sc >= cols {
						t.Fatalf("offset (%d,%d): source (%d,%d) out of bounds", dy, dx, sr, sc)
					}
				}
			}
		}
	}
}

func TestViewsEmptyWhenShiftedOut(t *testing.T) {
	src, dst := Views(0, 4, 3, 4)
	if !src.Empty() || !dst.Empty() {
		t.Errorf("expected empty views, got %+v %+v", src, dst)
	}
	src, dst = Views(-3, 1, 3, 4)
	if !src.Empty() || !dst.Empty() {
		t.Errorf("expected empty views, got %+v %+v", src, dst)
	}
}
