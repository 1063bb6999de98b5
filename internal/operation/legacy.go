package operation

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-constructor/internal/logger"
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

// SubdivideSmooth was never implemented: Subdivide followed by Smooth
// gives the same result. It passes the mesh through unchanged.
type SubdivideSmooth struct {
	Iterations uint32
	Smoothness float32
}

// MergeCleanup welds vertices with identical positions. Subdivide no
// longer creates duplicates, so it is retired from the active set.
type MergeCleanup struct{}

func (SubdivideSmooth) Kind() Kind { return KindSubdivideSmooth }
func (MergeCleanup) Kind() Kind    { return KindMergeCleanup }

func (SubdivideSmooth) operation() {}
func (MergeCleanup) operation()    {}

func (op SubdivideSmooth) Execute(in mesh.Buffer, _ *rng.Source) mesh.Buffer {
	logger.Warn("operation not implemented, passing mesh through",
		zap.String("op", op.Kind().String()))
	return in
}

// Execute keeps the last of each run of equal positions and rewrites the
// indices of dropped vertices to point at it.
func (MergeCleanup) Execute(in mesh.Buffer, _ *rng.Source) mesh.Buffer {
	inds := in.Indices
	verts := make([]mesh.Vertex, 0, len(in.Vertices))
	dropped := uint32(0)

	for first := range in.Vertices {
		match := -1
		for second := first + 1; second < len(in.Vertices); second++ {
			if in.Vertices[second].Pos == in.Vertices[first].Pos {
				match = second
				break
			}
		}

		if match < 0 {
			verts = append(verts, in.Vertices[first])
			continue
		}

		// Current index of first and of its duplicate after earlier drops.
		from := uint32(first) - dropped
		to := uint32(match) - dropped
		for i := range inds {
			if inds[i] == from {
				inds[i] = to
			}
		}
		for i := range inds {
			if inds[i] > from {
				inds[i]--
			}
		}
		dropped++
	}

	return mesh.Buffer{Vertices: verts, Indices: inds}
}
