package raster

import "math"

// lerp interpolates between two integer coordinates and rounds once,
// half away from zero.
func lerp(start, end int, t float64) int {
	return int(math.Round(float64(start) + float64(end-start)*t))
}

// lerpAmount returns the position of x between start and end in [0, 1].
// A zero-length span yields 0 so single-point lines draw their start.
func lerpAmount(start, end, x int) float64 {
	if end == start {
		return 0
	}
	return float64(x-start) / float64(end-start)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func inNDC(c float64) bool {
	return c >= -1.0 && c <= 1.0
}
