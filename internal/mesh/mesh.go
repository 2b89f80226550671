// Package mesh loads triangle meshes and prepares them for rasterization in
// normalized device coordinates.
package mesh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mini-renderer/internal/mathutil"
)

// ErrFormat reports malformed mesh input.
var ErrFormat = errors.New("mesh: malformed input")

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []mathutil.Vec3
	Faces    [][3]int
}

// Triangle returns the three vertices of face i.
func (m *Mesh) Triangle(i int) (a, b, c mathutil.Vec3) {
	f := m.Faces[i]
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Validate checks that every face index refers to a vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrFormat, i, vi, n)
			}
		}
	}
	return nil
}

// Load reads a mesh file, choosing the reader by extension:
// .obj is Wavefront OBJ, .xyz (or .txt) is a point cloud that gets
// triangulated.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	var m *Mesh
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err = ReadOBJ(f)
	case ".xyz", ".txt":
		m, err = ReadXYZ(f)
	default:
		return nil, fmt.Errorf("mesh: unknown extension %q: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("mesh: parse %s: %w", path, err)
	}
	return m, nil
}
