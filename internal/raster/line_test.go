package raster

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-renderer/internal/framebuffer"
)

var ink = framebuffer.RGB{R: 1, G: 1, B: 1}

func flatTarget(w, h int) (Target[framebuffer.RGB], *framebuffer.Packed[framebuffer.RGB]) {
	buf := framebuffer.NewRGB(w, h, framebuffer.Black)
	return Target[framebuffer.RGB]{Frame: buf}, buf
}

func depthTarget(w, h int) (Target[framebuffer.RGB], *framebuffer.Packed[framebuffer.RGB]) {
	buf := framebuffer.NewRGB(w, h, framebuffer.Black)
	return Target[framebuffer.RGB]{Frame: buf, Depth: NewDepthBuffer(w, h)}, buf
}

// assertPixels checks the listed coordinates against want and everything
// else against black.
func assertPixels(t *testing.T, buf *framebuffer.Packed[framebuffer.RGB], want framebuffer.RGB, painted ...[2]int) {
	t.Helper()
	set := make(map[[2]int]bool, len(painted))
	for _, p := range painted {
		set[p] = true
	}
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			got, _ := buf.At(x, y)
			if set[[2]int{x, y}] {
				assert.Equal(t, want, got, "(%d,%d) should be painted", x, y)
			} else {
				assert.Equal(t, framebuffer.Black, got, "(%d,%d) should be untouched", x, y)
			}
		}
	}
}

func TestDrawZeroLengthLineDrawsDot(t *testing.T) {
	tg, buf := flatTarget(2, 2)
	require.NoError(t, DrawLine(tg, pt(0, 0), pt(0, 0), ink))
	assertPixels(t, buf, ink, [2]int{0, 0})
}

func TestDrawDiagonalLine(t *testing.T) {
	tg, buf := flatTarget(2, 2)
	require.NoError(t, DrawLine(tg, pt(0, 0), pt(1, 1), ink))
	assertPixels(t, buf, ink, [2]int{0, 0}, [2]int{1, 1})
}

func TestDrawLineParameterOrderDoesNotMatter(t *testing.T) {
	tg, buf := flatTarget(2, 2)
	require.NoError(t, DrawLine(tg, pt(1, 1), pt(0, 0), ink))
	assertPixels(t, buf, ink, [2]int{0, 0}, [2]int{1, 1})
}

func TestDrawShallowLine(t *testing.T) {
	tg, buf := flatTarget(2, 2)
	require.NoError(t, DrawLine(tg, pt(0, 0), pt(1, 0), ink))
	assertPixels(t, buf, ink, [2]int{0, 0}, [2]int{1, 0})
}

func TestDrawSteepLine(t *testing.T) {
	tg, buf := flatTarget(2, 2)
	require.NoError(t, DrawLine(tg, pt(0, 0), pt(0, 1), ink))
	assertPixels(t, buf, ink, [2]int{0, 0}, [2]int{0, 1})
}

func TestDrawSteepLineIsConnected(t *testing.T) {
	tg, buf := flatTarget(5, 10)
	require.NoError(t, DrawLine(tg, pt(1, 0), pt(3, 9), ink))
	for y := 0; y < 10; y++ {
		n := 0
		for x := 0; x < 5; x++ {
			if p, _ := buf.At(x, y); p == ink {
				n++
			}
		}
		assert.Equal(t, 1, n, "row %d", y)
	}
}

func TestDrawLineSymmetry(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	const w, h = 17, 11
	for i := 0; i < 300; i++ {
		p := pt(rng.IntN(w), rng.IntN(h))
		q := pt(rng.IntN(w), rng.IntN(h))

		t1, b1 := flatTarget(w, h)
		t2, b2 := flatTarget(w, h)
		require.NoError(t, DrawLine(t1, p, q, ink))
		require.NoError(t, DrawLine(t2, q, p, ink))
		require.Equal(t, b1.Pix(), b2.Pix(), "%v -> %v", p, q)
	}
}

func TestDrawLineOutOfBounds(t *testing.T) {
	cases := [][2]ScreenPoint{
		{pt(0, 0), pt(2, 0)},
		{pt(0, 2), pt(1, 1)},
		{pt(5, 5), pt(5, 5)},
		{pt(-1, 0), pt(1, 1)},
	}
	for _, c := range cases {
		tg, buf := depthTarget(2, 2)
		before := buf.Clone()
		err := DrawLine(tg, c[0], c[1], ink)
		require.ErrorIs(t, err, ErrOutOfBounds)
		assert.ErrorIs(t, err, framebuffer.ErrOutOfBounds)

		var be *BoundsError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, 2, be.Width)

		assert.Equal(t, before.Pix(), buf.Pix())
		assert.Equal(t, make([]uint8, 4), tg.Depth.Samples())
	}
}

func TestDrawLineInterpolatesDepth(t *testing.T) {
	tg, _ := depthTarget(5, 1)
	a := ScreenPoint{X: 0, Y: 0, Z: 0}
	b := ScreenPoint{X: 4, Y: 0, Z: 100}
	require.NoError(t, DrawLine(tg, a, b, ink))
	assert.Equal(t, []uint8{0, 25, 50, 75, 100}, tg.Depth.Samples())
}

func TestDrawLineHiddenBehindDepth(t *testing.T) {
	tg, buf := depthTarget(3, 1)
	near := framebuffer.RGB{R: 200}
	require.NoError(t, DrawLine(tg, ScreenPoint{0, 0, 200}, ScreenPoint{2, 0, 200}, near))
	require.NoError(t, DrawLine(tg, ScreenPoint{0, 0, 10}, ScreenPoint{2, 0, 10}, ink))
	for x := 0; x < 3; x++ {
		p, _ := buf.At(x, 0)
		assert.Equal(t, near, p)
	}

	// Equal depth: last writer wins.
	require.NoError(t, DrawLine(tg, ScreenPoint{0, 0, 200}, ScreenPoint{2, 0, 200}, ink))
	p, _ := buf.At(1, 0)
	assert.Equal(t, ink, p)
}
