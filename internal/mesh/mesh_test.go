package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-renderer/internal/mathutil"
)

const cubeOBJ = `# unit cube
o cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
vt 0 0
vn 0 0 1
usemtl none
f 1/1/1 2/1/1 3/1/1 4/1/1
f 5//1 8//1 7//1 6//1
f 1 5 6
f 1 6 2
f -5 -1 -4
f 4 8 7
f 4 7 3
f 2 6 7 3
`

func TestReadOBJCube(t *testing.T) {
	m, err := ReadOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 8)
	// Three quads split in two plus five triangles.
	assert.Len(t, m.Faces, 11)
	assert.Equal(t, [3]int{0, 1, 2}, m.Faces[0])
	assert.Equal(t, [3]int{0, 2, 3}, m.Faces[1])
	// Negative indices are relative to the vertices read so far.
	assert.Equal(t, [3]int{3, 7, 4}, m.Faces[6])

	a, b, c := m.Triangle(0)
	assert.Equal(t, mathutil.Vec3{-1, -1, -1}, a)
	assert.Equal(t, mathutil.Vec3{1, -1, -1}, b)
	assert.Equal(t, mathutil.Vec3{1, 1, -1}, c)
}

func TestReadOBJErrors(t *testing.T) {
	cases := map[string]string{
		"short vertex":     "v 1 2\n",
		"bad coordinate":   "v 1 x 2\n",
		"short face":       "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"zero index":       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"index past end":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"relative too far": "v 0 0 0\nf -1 -2 -3\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(src))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestReadXYZ(t *testing.T) {
	src := "# grid\n0 0 0\n1,0,0.5\n0\t1\t0.5\n1 1 1\n"
	m, err := ReadXYZ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Faces, 2)
	require.NoError(t, m.Validate())
	assert.Equal(t, 0.5, m.Vertices[1][2])
}

func TestTriangulateTooFewPoints(t *testing.T) {
	_, err := Triangulate([]mathutil.Vec3{{0, 0, 0}, {1, 1, 1}})
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFit(t *testing.T) {
	m := &Mesh{Vertices: []mathutil.Vec3{{10, 20, 30}, {14, 22, 31}, {12, 21, 30.5}}}
	m.Fit(1)

	lo, hi, _ := mathutil.Extent(m.Vertices)
	assert.InDelta(t, -1.0, lo[0], 1e-12)
	assert.InDelta(t, 1.0, hi[0], 1e-12)
	assert.InDelta(t, -0.5, lo[1], 1e-12)
	assert.InDelta(t, 0.5, hi[1], 1e-12)
	assert.InDelta(t, -0.25, lo[2], 1e-12)

	m.Fit(0.5)
	lo, hi, _ = mathutil.Extent(m.Vertices)
	assert.InDelta(t, -0.5, lo[0], 1e-12)
	assert.InDelta(t, 0.5, hi[0], 1e-12)
}

func TestFitCollapsedMesh(t *testing.T) {
	m := &Mesh{Vertices: []mathutil.Vec3{{5, 5, 5}, {5, 5, 5}}}
	m.Fit(1)
	assert.Equal(t, []mathutil.Vec3{{}, {}}, m.Vertices)
}

func TestRotate(t *testing.T) {
	m := &Mesh{Vertices: []mathutil.Vec3{{0, 0, 1}}}
	m.Rotate(mathutil.Orientation(0, 90))
	assert.InDelta(t, 1.0, m.Vertices[0][0], 1e-12)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "cube.OBJ")
	require.NoError(t, os.WriteFile(objPath, []byte(cubeOBJ), 0644))

	m, err := Load(objPath)
	require.NoError(t, err)
	assert.Len(t, m.Faces, 11)

	_, err = Load(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)

	other := filepath.Join(dir, "model.stl")
	require.NoError(t, os.WriteFile(other, nil, 0644))
	_, err = Load(other)
	assert.Error(t, err)
}
