// Package output turns finished render buffers into image files.
package output

import (
	"fmt"
	"strings"
)

// Format is an image file format.
type Format string

const (
	PNG  Format = "png"
	TGA  Format = "tga"
	WebP Format = "webp"
	BMP  Format = "bmp"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case PNG, TGA, WebP, BMP:
		return f, nil
	case "":
		return PNG, nil
	}
	return "", fmt.Errorf("output: unknown format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

func (f Format) String() string { return string(f) }
