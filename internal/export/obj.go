// Package export writes finished meshes to Wavefront OBJ files.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/mesh"
)

// ErrNoMesh is returned when there is nothing built to export.
var ErrNoMesh = errors.New("no mesh to export")

// WriteOBJ writes positions, normals and faces of m as three commented
// blocks. Normals share the position indexing, so faces read "f i//i"
// with 1-based indices.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	if m == nil {
		return ErrNoMesh
	}

	bw := bufio.NewWriter(w)

	bw.WriteString("# vertices\n")
	for _, v := range m.Vertices {
		writeVec(bw, "v", v.Pos[0], v.Pos[1], v.Pos[2])
	}

	bw.WriteString("\n# normals\n")
	for _, v := range m.Vertices {
		writeVec(bw, "vn", v.Normal[0], v.Normal[1], v.Normal[2])
	}

	bw.WriteString("\n# faces\n")
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		i1, i2, i3 := tri[0]+1, tri[1]+1, tri[2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", i1, i1, i2, i2, i3, i3)
	}

	return bw.Flush()
}

func writeVec(w *bufio.Writer, tag string, x, y, z float32) {
	w.WriteString(tag)
	for _, c := range [3]float32{x, y, z} {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(float64(c), 'f', -1, 32))
	}
	w.WriteByte('\n')
}

// Filename returns the OBJ file name for a build seed.
func Filename(seed int64) string {
	return fmt.Sprintf("%d.obj", seed)
}

// SaveOBJ writes m to <dir>/<seed>.obj and returns the path.
func SaveOBJ(dir string, seed int64, m *mesh.Mesh) (string, error) {
	if m == nil {
		return "", ErrNoMesh
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path := filepath.Join(dir, Filename(seed))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	err = writeClose(file, func(w io.Writer) error { return WriteOBJ(w, m) })
	if err != nil {
		return "", fmt.Errorf("writing OBJ: %w", err)
	}

	logger.Named("export").Debug("mesh exported",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()))

	return path, nil
}

// writeClose runs write on wc and closes it. A Close error is returned
// when write itself succeeded.
func writeClose(wc io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil {
			err = cerr
		}
	}()
	return write(wc)
}
