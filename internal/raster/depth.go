package raster

import "image"

// Visibility is the outcome of a depth test.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// DepthBuffer holds one 8-bit depth sample per pixel, row-major.
// Samples start at 0, the minimum depth.
type DepthBuffer struct {
	width   int
	height  int
	samples []uint8
}

// NewDepthBuffer allocates a width×height buffer at minimum depth.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	return &DepthBuffer{
		width:   width,
		height:  height,
		samples: make([]uint8, width*height),
	}
}

func (d *DepthBuffer) Width() int  { return d.width }
func (d *DepthBuffer) Height() int { return d.height }

// At returns the stored sample, or false outside the buffer.
func (d *DepthBuffer) At(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0, false
	}
	return d.samples[y*d.width+x], true
}

// TestAndUpdate compares z with the stored sample. An incoming depth greater
// than or equal to the stored one wins: the sample is replaced and Visible is
// returned. Coordinates outside the buffer are Hidden.
func (d *DepthBuffer) TestAndUpdate(x, y int, z uint8) Visibility {
	return d.TestWithin(x, y, z, 0)
}

// TestWithin is TestAndUpdate with a tolerance: z is Visible when
// z+slack >= stored. The stored sample only ever grows, so a tolerated
// write never lowers the depth later draws are tested against.
func (d *DepthBuffer) TestWithin(x, y int, z, slack uint8) Visibility {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return Hidden
	}
	i := y*d.width + x
	if int(z)+int(slack) < int(d.samples[i]) {
		return Hidden
	}
	d.samples[i] = max(d.samples[i], z)
	return Visible
}

// Reset returns every sample to minimum depth.
func (d *DepthBuffer) Reset() {
	clear(d.samples)
}

// Samples returns the raw row-major samples. The slice aliases the buffer.
func (d *DepthBuffer) Samples() []uint8 { return d.samples }

// Gray returns a grayscale view of the buffer sharing its storage.
func (d *DepthBuffer) Gray() *image.Gray {
	return &image.Gray{
		Pix:    d.samples,
		Stride: d.width,
		Rect:   image.Rect(0, 0, d.width, d.height),
	}
}
