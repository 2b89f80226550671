package raster

import (
	"errors"
	"fmt"

	"mini-renderer/internal/framebuffer"
)

var (
	// ErrOutOfBounds reports a pixel coordinate outside the target buffer.
	// It matches framebuffer.ErrOutOfBounds under errors.Is.
	ErrOutOfBounds = fmt.Errorf("raster: %w", framebuffer.ErrOutOfBounds)

	// ErrNotInNormalizedDeviceCoords reports a vertex component outside [-1, 1].
	ErrNotInNormalizedDeviceCoords = errors.New("raster: vertex not in normalized device coordinates")

	// ErrReleased is returned by a Renderer whose buffers were taken.
	ErrReleased = errors.New("raster: renderer buffers already taken")
)

// BoundsError carries the offending coordinate of an ErrOutOfBounds failure.
type BoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("raster: pixel (%d,%d) outside %dx%d buffer", e.X, e.Y, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// NDCError carries the vertex rejected by the mapper.
type NDCError struct {
	Vertex Vertex
}

func (e *NDCError) Error() string {
	return fmt.Sprintf("raster: vertex (%g, %g, %g) not in normalized device coordinates",
		e.Vertex.X, e.Vertex.Y, e.Vertex.Z)
}

func (e *NDCError) Unwrap() error { return ErrNotInNormalizedDeviceCoords }
