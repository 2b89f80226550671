package raster

import "math"

// DepthRange is the number of distinct depth values minus one.
const DepthRange = 255

// Mapper converts NDC vertices to pixel coordinates for a buffer size.
type Mapper struct {
	Width  int
	Height int
}

// NewMapper returns a mapper for a width×height buffer.
func NewMapper(width, height int) Mapper {
	return Mapper{Width: width, Height: height}
}

// Map validates v and maps it to screen space.
//
// x and y use dimension-1 so that -1 lands on pixel 0 and +1 on the last
// index. z uses the full depth range: round((z+1)·255/2).
func (m Mapper) Map(v Vertex) (ScreenPoint, error) {
	if !inNDC(v.X) || !inNDC(v.Y) || !inNDC(v.Z) {
		return ScreenPoint{}, &NDCError{Vertex: v}
	}
	return ScreenPoint{
		X: int(math.Round((v.X + 1.0) * float64(m.Width-1) / 2.0)),
		Y: int(math.Round((v.Y + 1.0) * float64(m.Height-1) / 2.0)),
		Z: uint8(math.Round((v.Z + 1.0) * DepthRange / 2.0)),
	}, nil
}

// MapTriangle maps all three vertices, failing on the first invalid one.
func (m Mapper) MapTriangle(a, b, c Vertex) (Triangle2, error) {
	var t Triangle2
	var err error
	if t.A, err = m.Map(a); err != nil {
		return Triangle2{}, err
	}
	if t.B, err = m.Map(b); err != nil {
		return Triangle2{}, err
	}
	if t.C, err = m.Map(c); err != nil {
		return Triangle2{}, err
	}
	return t, nil
}
