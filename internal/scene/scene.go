// Package scene draws a whole mesh through the rasterizer with flat
// per-face shading and an optional wireframe overlay.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"mini-renderer/internal/framebuffer"
	"mini-renderer/internal/mathutil"
	"mini-renderer/internal/mesh"
	"mini-renderer/internal/raster"
)

// Mode selects which passes run per face.
type Mode int

const (
	// Both fills lit faces and overlays every edge in the wire color.
	Both Mode = iota
	// Filled fills lit faces only.
	Filled
	// Wireframe draws edges only.
	Wireframe
)

func (m Mode) String() string {
	switch m {
	case Both:
		return "both"
	case Filled:
		return "filled"
	case Wireframe:
		return "outline"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "both", "filled" and "outline" (or "wireframe").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "both", "":
		return Both, nil
	case "filled", "fill":
		return Filled, nil
	case "outline", "wireframe", "wire":
		return Wireframe, nil
	}
	return 0, fmt.Errorf("scene: unknown mode %q", s)
}

// Settings controls a render pass.
type Settings struct {
	Width, Height int
	Mode          Mode
	Background    framebuffer.RGB
	WireColor     framebuffer.RGB
	// Light is the direction faces are lit from. Faces whose normal has a
	// non-positive dot product with it are not filled.
	Light mathutil.Vec3
	// IntensityScale converts a [0,1] intensity into a gray level.
	IntensityScale float64
	DepthTest      bool
	// Strict aborts on the first face outside normalized device
	// coordinates instead of skipping it.
	Strict bool
}

// DefaultSettings is a 2500x2500 render with a dark teal background,
// pale wireframe, light along +z.
func DefaultSettings() Settings {
	return Settings{
		Width:          2500,
		Height:         2500,
		Mode:           Both,
		Background:     framebuffer.RGB{R: 0, G: 20, B: 25},
		WireColor:      framebuffer.RGB{R: 230, G: 240, B: 250},
		Light:          mathutil.Vec3{0, 0, 1},
		IntensityScale: 85,
		DepthTest:      true,
	}
}

// Stats summarizes a render pass.
type Stats struct {
	Faces   int // faces in the mesh
	Filled  int // faces that received a fill
	Unlit   int // faces facing away from the light
	Skipped int // faces with a vertex outside NDC
}

// Shade returns the flat gray for a face, and false when the face is
// turned away from the light.
func Shade(a, b, c mathutil.Vec3, light mathutil.Vec3, scale float64) (framebuffer.RGB, bool) {
	intensity := mathutil.FaceNormal(a, b, c).Dot(light.Normalize())
	if intensity <= 0 {
		return framebuffer.RGB{}, false
	}
	v := intensity * scale
	if v > 255 {
		v = 255
	}
	return framebuffer.Gray(uint8(v)), true
}

func vertex(v mathutil.Vec3) raster.Vertex {
	return raster.Vertex{X: v[0], Y: v[1], Z: v[2]}
}

// Render creates a renderer sized by s and draws every face of m into it.
func Render(m *mesh.Mesh, s Settings) (*raster.Renderer[framebuffer.RGB], Stats, error) {
	var opts []raster.Option
	if !s.DepthTest {
		opts = append(opts, raster.WithoutDepthTest())
	}
	r := raster.New(s.Width, s.Height, opts...)
	stats, err := Draw(r, m, s)
	return r, stats, err
}

// Draw clears r to the background and draws every face of m.
func Draw(r *raster.Renderer[framebuffer.RGB], m *mesh.Mesh, s Settings) (Stats, error) {
	stats := Stats{Faces: len(m.Faces)}
	if err := m.Validate(); err != nil {
		return stats, err
	}
	if err := r.Clear(s.Background); err != nil {
		return stats, err
	}

	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		lit, err := drawFace(r, a, b, c, s)
		if errors.Is(err, raster.ErrNotInNormalizedDeviceCoords) && !s.Strict {
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("scene: face %d: %w", i, err)
		}
		if s.Mode == Wireframe {
			continue
		}
		if lit {
			stats.Filled++
		} else {
			stats.Unlit++
		}
	}
	return stats, nil
}

// drawFace reports whether the face was lit. A mapping error leaves the
// buffers untouched.
func drawFace(r *raster.Renderer[framebuffer.RGB], a, b, c mathutil.Vec3, s Settings) (bool, error) {
	va, vb, vc := vertex(a), vertex(b), vertex(c)
	lit := false
	if s.Mode != Wireframe {
		var col framebuffer.RGB
		if col, lit = Shade(a, b, c, s.Light, s.IntensityScale); lit {
			if err := r.DrawTriangleFilled(va, vb, vc, col); err != nil {
				return false, err
			}
		}
	}
	switch s.Mode {
	case Both:
		if err := r.DrawTriangleOverlay(va, vb, vc, s.WireColor); err != nil {
			return lit, err
		}
	case Wireframe:
		if err := r.DrawTriangleOutline(va, vb, vc, s.WireColor); err != nil {
			return lit, err
		}
	}
	return lit, nil
}
