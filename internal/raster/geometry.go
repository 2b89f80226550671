package raster

import "math"

// Vertex is a point in normalized device coordinates.
type Vertex struct {
	X, Y, Z float64
}

// ScreenPoint is an integer pixel coordinate with a quantized depth.
type ScreenPoint struct {
	X, Y int
	Z    uint8
}

// BoundingBox is an axis-aligned box with inclusive corners.
type BoundingBox struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Triangle2 is a screen-space triangle. Its points need not be distinct.
type Triangle2 struct {
	A, B, C ScreenPoint
}

// Bounds returns the per-axis min/max over the three points.
func (t Triangle2) Bounds() BoundingBox {
	return BoundingBox{
		MinX: min(t.A.X, t.B.X, t.C.X),
		MinY: min(t.A.Y, t.B.Y, t.C.Y),
		MaxX: max(t.A.X, t.B.X, t.C.X),
		MaxY: max(t.A.Y, t.B.Y, t.C.Y),
	}
}

// Barycentric returns the weights (u, v) of B and C for point (px, py), so
// that P = A + u·(B-A) + v·(C-A). The weight of A is 1-u-v.
// ok is false for zero-area triangles, where the weights are undefined.
func (t Triangle2) Barycentric(px, py float64) (u, v float64, ok bool) {
	abX, abY := float64(t.B.X-t.A.X), float64(t.B.Y-t.A.Y)
	acX, acY := float64(t.C.X-t.A.X), float64(t.C.Y-t.A.Y)
	paX, paY := float64(t.A.X)-px, float64(t.A.Y)-py

	// (abX, acX, paX) × (abY, acY, paY)
	cx := acX*paY - paX*acY
	cy := paX*abY - abX*paY
	cz := abX*acY - acX*abY
	if cz == 0 {
		return 0, 0, false
	}
	return cx / cz, cy / cz, true
}

// Contains reports whether (px, py) lies inside the triangle or on its edge.
func (t Triangle2) Contains(px, py float64) bool {
	u, v, ok := t.Barycentric(px, py)
	return ok && inside(u, v)
}

// DepthAt interpolates the vertex depths at barycentric weights (u, v).
func (t Triangle2) DepthAt(u, v float64) uint8 {
	w := 1 - u - v
	return clamp255(w*float64(t.A.Z) + u*float64(t.B.Z) + v*float64(t.C.Z))
}

// DepthSlack bounds how far apart two depths this triangle writes at the same
// pixel can be: its edges sample the depth plane up to half a pixel off the
// pixel the fill samples, and each value is rounded once. The bound never
// exceeds the spread of the vertex depths, which also covers zero-area
// triangles.
func (t Triangle2) DepthSlack() uint8 {
	span := float64(max(t.A.Z, t.B.Z, t.C.Z) - min(t.A.Z, t.B.Z, t.C.Z))

	abX, abY := float64(t.B.X-t.A.X), float64(t.B.Y-t.A.Y)
	acX, acY := float64(t.C.X-t.A.X), float64(t.C.Y-t.A.Y)
	cz := abX*acY - acX*abY
	if cz == 0 {
		return uint8(span)
	}
	dzB, dzC := float64(t.B.Z)-float64(t.A.Z), float64(t.C.Z)-float64(t.A.Z)
	gx := (dzB*acY - dzC*abY) / cz
	gy := (dzC*abX - dzB*acX) / cz
	return uint8(math.Min(span, 1+math.Ceil(math.Abs(gx)+math.Abs(gy))))
}

func inside(u, v float64) bool {
	return u >= 0 && v >= 0 && u+v <= 1
}
