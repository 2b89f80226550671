package mesh

import (
	"math"

	"mini-renderer/internal/mathutil"
)

// Rotate applies r to every vertex in place.
func (m *Mesh) Rotate(r mathutil.Mat3) {
	if r.IsIdentity() {
		return
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = r.MulVec3(v)
	}
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// extent spans [-fill, fill]. fill is clamped to (0, 1]; 0 selects 1.
// Aspect ratio is preserved, so the smaller axes end up inside the range.
func (m *Mesh) Fit(fill float64) {
	lo, hi, ok := mathutil.Extent(m.Vertices)
	if !ok {
		return
	}
	if fill <= 0 || fill > 1 {
		fill = 1
	}

	center := lo.Add(hi).Scale(0.5)
	span := math.Max(hi[0]-lo[0], math.Max(hi[1]-lo[1], hi[2]-lo[2]))
	if span < 1e-12 {
		// Every vertex coincides.
		for i := range m.Vertices {
			m.Vertices[i] = mathutil.Vec3{}
		}
		return
	}
	scale := 2 * fill / span
	for i, v := range m.Vertices {
		p := v.Sub(center).Scale(scale)
		for k := 0; k < 3; k++ {
			p[k] = math.Max(-1, math.Min(1, p[k]))
		}
		m.Vertices[i] = p
	}
}
