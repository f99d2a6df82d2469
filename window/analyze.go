package window

// Properties summarises a window for reporting.
type Properties struct {
	Height, Width int
	RadiusY       int
	RadiusX       int
	// Active is the number of nonzero weights, i.e. accumulation passes.
	Active int
	// WeightSum is the full neighbor count of an unobstructed interior cell.
	WeightSum float64
	MaxWeight float64
	// Fill is Active / (Height*Width - 1), the share of neighbors used.
	Fill float64
}

// Analyze computes Properties for w.
func Analyze(w *Window) Properties {
	if w == nil {
		return Properties{}
	}

	ry, rx := w.Radius()
	p := Properties{
		Height:    w.height,
		Width:     w.width,
		RadiusY:   ry,
		RadiusX:   rx,
		Active:    w.Active(),
		WeightSum: w.WeightSum(),
	}
	for _, v := range w.weights {
		if v > p.MaxWeight {
			p.MaxWeight = v
		}
	}
	if cells := w.height*w.width - 1; cells > 0 {
		p.Fill = float64(p.Active) / float64(cells)
	}
	return p
}
