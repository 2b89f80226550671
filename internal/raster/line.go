package raster

import "mini-renderer/internal/framebuffer"

// Target is the drawing context for a single call: the color buffer and,
// when depth testing is on, the depth buffer sized like it.
type Target[P any] struct {
	Frame framebuffer.Buffer[P]
	Depth *DepthBuffer
	// Slack is the depth tolerance passed to DepthBuffer.TestWithin.
	Slack uint8
}

func (t Target[P]) checkBounds(p ScreenPoint) error {
	w, h := t.Frame.Width(), t.Frame.Height()
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return &BoundsError{X: p.X, Y: p.Y, Width: w, Height: h}
	}
	return nil
}

// plot writes col at (x, y), consulting the depth buffer if there is one.
// Callers have already bounds-checked the coordinate.
func (t Target[P]) plot(x, y int, z uint8, col P) {
	if t.Depth != nil && t.Depth.TestWithin(x, y, z, t.Slack) == Hidden {
		return
	}
	_ = t.Frame.Set(x, y, col)
}

// DrawLine rasterizes the segment start→end. Both endpoints must be inside
// the frame; otherwise nothing is drawn and a *BoundsError is returned.
//
// Steep lines are transposed so the loop advances one pixel per step along
// the major axis, and endpoints are ordered so DrawLine(p, q) and
// DrawLine(q, p) paint the same pixels.
func DrawLine[P any](t Target[P], start, end ScreenPoint, col P) error {
	if err := t.checkBounds(start); err != nil {
		return err
	}
	if err := t.checkBounds(end); err != nil {
		return err
	}

	steep := abs(end.Y-start.Y) > abs(end.X-start.X)
	if steep {
		start.X, start.Y = start.Y, start.X
		end.X, end.Y = end.Y, end.X
	}
	if start.X > end.X {
		start, end = end, start
	}

	for x := start.X; x <= end.X; x++ {
		amount := lerpAmount(start.X, end.X, x)
		y := lerp(start.Y, end.Y, amount)
		z := uint8(lerp(int(start.Z), int(end.Z), amount))
		if steep {
			t.plot(y, x, z, col)
		} else {
			t.plot(x, y, z, col)
		}
	}
	return nil
}
