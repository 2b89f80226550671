package raster

// DrawMode selects which passes DrawTriangle runs.
type DrawMode int

const (
	// Outline draws the three edges only.
	Outline DrawMode = iota
	// Filled draws the edges, then fills the interior.
	Filled
	// Overlay draws the edges over an earlier fill of the same triangle.
	// Edge pixels get the triangle's DepthSlack, so rounding differences
	// between the edge and fill passes cannot hide them, while geometry
	// nearer than the triangle itself still does.
	Overlay
)

func (m DrawMode) String() string {
	switch m {
	case Outline:
		return "outline"
	case Filled:
		return "filled"
	case Overlay:
		return "overlay"
	}
	return "unknown"
}

// DrawTriangle maps a, b, c to screen space and rasterizes the triangle.
//
// All vertices are mapped and bounds-checked before any pixel is written, so
// a failing call leaves both buffers untouched. Degenerate triangles are not
// an error: the fill pass simply paints nothing beyond the outline.
func DrawTriangle[P any](t Target[P], a, b, c Vertex, col P, mode DrawMode) error {
	tri, err := NewMapper(t.Frame.Width(), t.Frame.Height()).MapTriangle(a, b, c)
	if err != nil {
		return err
	}
	return DrawScreenTriangle(t, tri, col, mode)
}

// DrawScreenTriangle rasterizes a triangle that is already in screen space.
func DrawScreenTriangle[P any](t Target[P], tri Triangle2, col P, mode DrawMode) error {
	for _, p := range [3]ScreenPoint{tri.A, tri.B, tri.C} {
		if err := t.checkBounds(p); err != nil {
			return err
		}
	}

	if mode == Overlay {
		t.Slack = max(t.Slack, tri.DepthSlack())
	}

	// Endpoints were checked above, so the edges cannot fail.
	_ = DrawLine(t, tri.A, tri.B, col)
	_ = DrawLine(t, tri.B, tri.C, col)
	_ = DrawLine(t, tri.C, tri.A, col)

	if mode == Filled {
		fill(t, tri, col)
	}
	return nil
}

func fill[P any](t Target[P], tri Triangle2, col P) {
	bb := tri.Bounds()
	for y := bb.MinY; y <= bb.MaxY; y++ {
		for x := bb.MinX; x <= bb.MaxX; x++ {
			u, v, ok := tri.Barycentric(float64(x), float64(y))
			if !ok {
				// Zero area: every pixel of the box gives the same answer.
				return
			}
			if !inside(u, v) {
				continue
			}
			t.plot(x, y, tri.DepthAt(u, v), col)
		}
	}
}
