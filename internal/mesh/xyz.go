package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fogleman/delaunay"

	"mini-renderer/internal/mathutil"
)

// ReadXYZ parses a point cloud, one "x y z" triple per line (spaces, tabs or
// commas), and triangulates it as a height field: faces come from the
// Delaunay triangulation of the points projected onto the xy plane.
func ReadXYZ(r io.Reader) (*Mesh, error) {
	var pts []mathutil.Vec3
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) == 0 {
			continue
		}
		v, err := parseVertex(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pts = append(pts, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return Triangulate(pts)
}

// Triangulate builds a mesh over pts using the Delaunay triangulation of
// their xy projection. The z coordinate is carried through unchanged.
func Triangulate(pts []mathutil.Vec3) (*Mesh, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 points, got %d", ErrFormat, len(pts))
	}
	flat := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		flat[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(flat)
	if err != nil {
		return nil, fmt.Errorf("%w: triangulate: %v", ErrFormat, err)
	}

	m := &Mesh{
		Vertices: pts,
		Faces:    make([][3]int, 0, len(tri.Triangles)/3),
	}
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		m.Faces = append(m.Faces, [3]int{tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]})
	}
	return m, nil
}
