package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mini-renderer/internal/mathutil"
	"mini-renderer/internal/mesh"
	"mini-renderer/internal/raster"
	"mini-renderer/internal/scene"
)

var (
	pitch, yaw float64
	size       int
)

var rootCmd = &cobra.Command{
	Use:   "inspect [flags] FILE...",
	Short: "Print mesh extents and how faces map to screen space",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		for _, arg := range args {
			m, err := mesh.Load(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			fmt.Printf("\n=== %s (vertices=%d faces=%d) ===\n", arg, len(m.Vertices), len(m.Faces))
			if err := m.Validate(); err != nil {
				fmt.Printf("  invalid: %v\n", err)
				continue
			}

			fmt.Println("--- RAW ---")
			printMesh(m)

			m.Rotate(mathutil.Orientation(pitch, yaw))
			m.Fit(1)
			fmt.Printf("--- AFTER pitch=%.1f yaw=%.1f + fit ---\n", pitch, yaw)
			printMesh(m)
			printScreen(m)
		}
		return nil
	},
}

func printMesh(m *mesh.Mesh) {
	lo, hi, ok := mathutil.Extent(m.Vertices)
	if !ok {
		fmt.Println("  (no vertices)")
		return
	}
	fmt.Printf("  x=[%.4f..%.4f] y=[%.4f..%.4f] z=[%.4f..%.4f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
}

// printScreen classifies every face the way a render at size×size would.
func printScreen(m *mesh.Mesh) {
	mapper := raster.NewMapper(size, size)
	light := scene.DefaultSettings().Light
	var outside, degenerate, lit, pixels int
	for i := range m.Faces {
		a, b, c := m.Triangle(i)
		t, err := mapper.MapTriangle(
			raster.Vertex{X: a[0], Y: a[1], Z: a[2]},
			raster.Vertex{X: b[0], Y: b[1], Z: b[2]},
			raster.Vertex{X: c[0], Y: c[1], Z: c[2]},
		)
		if err != nil {
			outside++
			continue
		}
		if _, _, ok := t.Barycentric(0, 0); !ok {
			degenerate++
			continue
		}
		if _, ok := scene.Shade(a, b, c, light, 1); ok {
			lit++
		}
		bb := t.Bounds()
		pixels += (bb.MaxX - bb.MinX + 1) * (bb.MaxY - bb.MinY + 1)
	}
	fmt.Printf("  screen %dx%d: outside=%d degenerate=%d lit=%d bbox_pixels=%d\n",
		size, size, outside, degenerate, lit, pixels)
}

func init() {
	flags := rootCmd.Flags()
	flags.Float64Var(&pitch, "pitch", 0, "rotation around x in degrees.")
	flags.Float64Var(&yaw, "yaw", 0, "rotation around y in degrees.")
	flags.IntVar(&size, "size", 2500, "square screen size used to classify faces.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
