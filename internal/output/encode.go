package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/zeebo/xxh3"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case TGA:
		err = tga.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("output: unknown format %q", string(f))
	}
	if err != nil {
		return fmt.Errorf("output: %s encode: %w", f, err)
	}
	return nil
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Checksum hashes the pixel content of img, independent of file format.
func Checksum(img image.Image) uint64 {
	switch m := img.(type) {
	case *image.NRGBA:
		if m.Stride == 4*m.Rect.Dx() {
			return xxh3.Hash(m.Pix)
		}
	case *image.Gray:
		if m.Stride == m.Rect.Dx() {
			return xxh3.Hash(m.Pix)
		}
	}
	b := img.Bounds()
	tmp := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(tmp, tmp.Rect, img, b.Min, draw.Src)
	return xxh3.Hash(tmp.Pix)
}
