package neighborhood

// Span is a half-open index range [Start, Stop) along one grid axis.
type Span struct {
	Start, Stop int
}

// Len returns the number of indices in s.
func (s Span) Len() int {
	if s.Stop <= s.Start {
		return 0
	}
	return s.Stop - s.Start
}

// View is a rectangular region of a grid given by a row span and a column span.
type View struct {
	Rows, Cols Span
}

// Empty reports whether v covers no cell.
func (v View) Empty() bool {
	return v.Rows.Len() == 0 || v.Cols.Len() == 0
}

// axisSpans returns matching source and destination spans for a shift of
// offset cells along an axis of length size. Destination index i receives
// source index i+offset; both spans have the same length.
func axisSpans(offset, size int) (src, dst Span) {
	a := offset
	if a < 0 {
		a = -a
	}
	if a >= size {
		return Span{}, Span{}
	}

	src = Span{Start: a, Stop: size}
	dst = Span{Start: 0, Stop: size - a}
	// A negative shift reads from the leading edge and writes to the trailing one.
	if offset < 0 {
		src, dst = dst, src
	}
	return src, dst
}

// Views returns the source and destination regions for window offset
// (dy, dx) over a rows × cols grid: for every cell (r, c) of dst, the cell
// (r+dy, c+dx) is the matching cell of src. Out-of-bounds neighbors are never
// part of src, so no padded copy of the grid is needed. Both views are empty
// when the offset shifts the grid entirely out of range.
func Views(dy, dx, rows, cols int) (src, dst View) {
	src.Rows, dst.Rows = axisSpans(dy, rows)
	src.Cols, dst.Cols = axisSpans(dx, cols)
	if src.Empty() {
		return View{}, View{}
	}
	return src, dst
}
