package framebuffer

// RGB is an 8-bit-per-channel color. Channel order in memory is decided by the
// Layout, not by this type.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Gray returns an RGB with all three channels set to v.
func Gray(v uint8) RGB {
	return RGB{v, v, v}
}

// Layout packs and unpacks one pixel of type P.
type Layout[P any] interface {
	// Size is the number of bytes per pixel.
	Size() int
	Put(dst []uint8, p P)
	Get(src []uint8) P
}

// RGBLayout stores R, G, B in that order.
type RGBLayout struct{}

func (RGBLayout) Size() int { return 3 }

func (RGBLayout) Put(dst []uint8, p RGB) {
	dst[0], dst[1], dst[2] = p.R, p.G, p.B
}

func (RGBLayout) Get(src []uint8) RGB {
	return RGB{R: src[0], G: src[1], B: src[2]}
}

// BGRLayout stores B, G, R in that order, as TGA and BMP files do.
type BGRLayout struct{}

func (BGRLayout) Size() int { return 3 }

func (BGRLayout) Put(dst []uint8, p RGB) {
	dst[0], dst[1], dst[2] = p.B, p.G, p.R
}

func (BGRLayout) Get(src []uint8) RGB {
	return RGB{R: src[2], G: src[1], B: src[0]}
}

// GrayLayout stores a single 8-bit channel.
type GrayLayout struct{}

func (GrayLayout) Size() int { return 1 }

func (GrayLayout) Put(dst []uint8, p uint8) { dst[0] = p }

func (GrayLayout) Get(src []uint8) uint8 { return src[0] }

// NewRGB allocates an RGB-ordered buffer.
func NewRGB(width, height int, init RGB) *Packed[RGB] {
	return New[RGB](RGBLayout{}, width, height, init)
}

// NewBGR allocates a BGR-ordered buffer.
func NewBGR(width, height int, init RGB) *Packed[RGB] {
	return New[RGB](BGRLayout{}, width, height, init)
}
