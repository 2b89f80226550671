package framebuffer

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned by Set when the coordinate lies outside the buffer.
var ErrOutOfBounds = errors.New("framebuffer: pixel out of bounds")

// Buffer is the pixel store the rasterizer draws into.
// Implementations decide the channel order; callers only see P.
type Buffer[P any] interface {
	Width() int
	Height() int
	// At returns the pixel at (x, y), or false if the coordinate is out of range.
	At(x, y int) (P, bool)
	// Set writes p at (x, y). Out-of-range writes fail without side effects.
	Set(x, y int, p P) error
}

// Packed stores pixels as interleaved bytes in row-major order.
// The byte layout per pixel is defined by a Layout.
type Packed[P any] struct {
	width  int
	height int
	layout Layout[P]
	pix    []uint8
}

// New allocates a width×height buffer with every pixel set to init.
// Negative dimensions are treated as zero.
func New[P any](layout Layout[P], width, height int, init P) *Packed[P] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Packed[P]{
		width:  width,
		height: height,
		layout: layout,
		pix:    make([]uint8, width*height*layout.Size()),
	}
	b.Fill(init)
	return b
}

func (b *Packed[P]) Width() int  { return b.width }
func (b *Packed[P]) Height() int { return b.height }

// Layout returns the channel layout of the buffer.
func (b *Packed[P]) Layout() Layout[P] { return b.layout }

// Pix returns the raw pixel bytes. The slice aliases the buffer.
func (b *Packed[P]) Pix() []uint8 { return b.pix }

func (b *Packed[P]) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Packed[P]) offset(x, y int) int {
	return (y*b.width + x) * b.layout.Size()
}

func (b *Packed[P]) At(x, y int) (P, bool) {
	if !b.inBounds(x, y) {
		var zero P
		return zero, false
	}
	i := b.offset(x, y)
	return b.layout.Get(b.pix[i : i+b.layout.Size()]), true
}

func (b *Packed[P]) Set(x, y int, p P) error {
	if !b.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := b.offset(x, y)
	b.layout.Put(b.pix[i:i+b.layout.Size()], p)
	return nil
}

// Fill sets every pixel to p.
func (b *Packed[P]) Fill(p P) {
	n := b.layout.Size()
	if len(b.pix) == 0 {
		return
	}
	b.layout.Put(b.pix[:n], p)
	// Double the initialized prefix until the slice is covered.
	for filled := n; filled < len(b.pix); filled *= 2 {
		copy(b.pix[filled:], b.pix[:filled])
	}
}

// Clone returns a deep copy of the buffer.
func (b *Packed[P]) Clone() *Packed[P] {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Packed[P]{width: b.width, height: b.height, layout: b.layout, pix: pix}
}
