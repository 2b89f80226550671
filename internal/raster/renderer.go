package raster

import "mini-renderer/internal/framebuffer"

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	depthTest bool
}

func defaultOptions() options {
	return options{depthTest: true}
}

// WithoutDepthTest disables the depth buffer: every draw paints
// unconditionally, in call order.
func WithoutDepthTest() Option {
	return func(o *options) {
		o.depthTest = false
	}
}

// Renderer owns a color buffer and, unless depth testing is disabled, a
// depth buffer of the same size. It is not safe for concurrent use.
type Renderer[P any] struct {
	frame framebuffer.Buffer[P]
	depth *DepthBuffer
	taken bool
}

// New creates a width×height renderer over a black RGB buffer.
func New(width, height int, opts ...Option) *Renderer[framebuffer.RGB] {
	return NewWithBuffer[framebuffer.RGB](framebuffer.NewRGB(width, height, framebuffer.Black), opts...)
}

// NewWithBuffer creates a renderer that draws into an existing buffer.
// The renderer takes ownership of buf.
func NewWithBuffer[P any](buf framebuffer.Buffer[P], opts ...Option) *Renderer[P] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer[P]{frame: buf}
	if o.depthTest {
		r.depth = NewDepthBuffer(buf.Width(), buf.Height())
	}
	return r
}

func (r *Renderer[P]) target() (Target[P], error) {
	if r.taken {
		return Target[P]{}, ErrReleased
	}
	return Target[P]{Frame: r.frame, Depth: r.depth}, nil
}

// Width returns the buffer width, or 0 after Take.
func (r *Renderer[P]) Width() int {
	if r.taken {
		return 0
	}
	return r.frame.Width()
}

// Height returns the buffer height, or 0 after Take.
func (r *Renderer[P]) Height() int {
	if r.taken {
		return 0
	}
	return r.frame.Height()
}

// Clear paints every pixel with col and resets the depth buffer.
func (r *Renderer[P]) Clear(col P) error {
	if r.taken {
		return ErrReleased
	}
	if f, ok := r.frame.(interface{ Fill(P) }); ok {
		f.Fill(col)
	} else {
		for y := 0; y < r.frame.Height(); y++ {
			for x := 0; x < r.frame.Width(); x++ {
				_ = r.frame.Set(x, y, col)
			}
		}
	}
	if r.depth != nil {
		r.depth.Reset()
	}
	return nil
}

// DrawLine maps both vertices and draws the segment between them.
func (r *Renderer[P]) DrawLine(a, b Vertex, col P) error {
	t, err := r.target()
	if err != nil {
		return err
	}
	m := NewMapper(r.frame.Width(), r.frame.Height())
	start, err := m.Map(a)
	if err != nil {
		return err
	}
	end, err := m.Map(b)
	if err != nil {
		return err
	}
	return DrawLine(t, start, end, col)
}

// DrawTriangleOutline draws the edges of triangle abc.
func (r *Renderer[P]) DrawTriangleOutline(a, b, c Vertex, col P) error {
	t, err := r.target()
	if err != nil {
		return err
	}
	return DrawTriangle(t, a, b, c, col, Outline)
}

// DrawTriangleFilled draws triangle abc with its interior.
func (r *Renderer[P]) DrawTriangleFilled(a, b, c Vertex, col P) error {
	t, err := r.target()
	if err != nil {
		return err
	}
	return DrawTriangle(t, a, b, c, col, Filled)
}

// DrawTriangleOverlay draws the edges of triangle abc on top of an earlier
// DrawTriangleFilled of the same triangle.
func (r *Renderer[P]) DrawTriangleOverlay(a, b, c Vertex, col P) error {
	t, err := r.target()
	if err != nil {
		return err
	}
	return DrawTriangle(t, a, b, c, col, Overlay)
}

// Buffer returns the color buffer for reading. It is nil after Take.
func (r *Renderer[P]) Buffer() framebuffer.Buffer[P] {
	if r.taken {
		return nil
	}
	return r.frame
}

// Depth returns the depth buffer for reading. It is nil after Take or when
// depth testing is disabled.
func (r *Renderer[P]) Depth() *DepthBuffer {
	if r.taken {
		return nil
	}
	return r.depth
}

// Take hands both buffers to the caller. Every later call on r fails with
// ErrReleased.
func (r *Renderer[P]) Take() (framebuffer.Buffer[P], *DepthBuffer, error) {
	if r.taken {
		return nil, nil, ErrReleased
	}
	frame, depth := r.frame, r.depth
	r.frame, r.depth, r.taken = nil, nil, true
	return frame, depth, nil
}
