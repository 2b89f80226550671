package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mini-renderer/internal/mathutil"
)

// ReadOBJ parses the geometry subset of a Wavefront OBJ stream: "v" lines
// and "f" lines. Texture, normal, group and material directives are skipped.
// Polygons with more than three corners are split into a fan around the
// first corner.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners", ErrFormat, lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				vi, err := parseCorner(tok, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, vi)
			}
			for k := 1; k+1 < len(corners); k++ {
				m.Faces = append(m.Faces, [3]int{corners[0], corners[k], corners[k+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVertex(fields []string) (mathutil.Vec3, error) {
	if len(fields) < 3 {
		return mathutil.Vec3{}, fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrFormat, len(fields))
	}
	var v mathutil.Vec3
	for k := 0; k < 3; k++ {
		f, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return mathutil.Vec3{}, fmt.Errorf("%w: vertex coordinate %q", ErrFormat, fields[k])
		}
		v[k] = f
	}
	return v, nil
}

// parseCorner returns the zero-based vertex index of a face corner such as
// "7", "7/3" or "-1//2". Negative indices count back from the last vertex
// read so far.
func parseCorner(tok string, nverts int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil || idx == 0 {
		return 0, fmt.Errorf("%w: face index %q", ErrFormat, tok)
	}
	if idx < 0 {
		return nverts + idx, nil
	}
	return idx - 1, nil
}
