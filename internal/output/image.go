package output

import (
	"image"

	"golang.org/x/image/draw"

	"mini-renderer/internal/framebuffer"
	"mini-renderer/internal/raster"
)

// Image copies buf into an opaque NRGBA image. With flip set, row 0 of the
// buffer becomes the bottom row of the image, so NDC +y points up.
func Image(buf framebuffer.Buffer[framebuffer.RGB], flip bool) *image.NRGBA {
	w, h := buf.Width(), buf.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y
		if flip {
			row = h - 1 - y
		}
		for x := 0; x < w; x++ {
			p, _ := buf.At(x, y)
			i := img.PixOffset(x, row)
			img.Pix[i] = p.R
			img.Pix[i+1] = p.G
			img.Pix[i+2] = p.B
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// DepthImage copies the depth samples into a grayscale image: nearer
// surfaces are brighter, untouched pixels are black.
func DepthImage(d *raster.DepthBuffer, flip bool) *image.Gray {
	src := d.Gray()
	img := image.NewGray(src.Rect)
	if !flip {
		copy(img.Pix, src.Pix)
		return img
	}
	h := src.Rect.Dy()
	for y := 0; y < h; y++ {
		copy(img.Pix[(h-1-y)*img.Stride:][:src.Stride], src.Pix[y*src.Stride:][:src.Stride])
	}
	return img
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
// so individual pixels stay crisp. Factors below 2 return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	r := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)

	var dst draw.Image
	if _, ok := img.(*image.Gray); ok {
		dst = image.NewGray(r)
	} else {
		dst = image.NewNRGBA(r)
	}
	draw.NearestNeighbor.Scale(dst, r, img, b, draw.Src, nil)
	return dst
}
