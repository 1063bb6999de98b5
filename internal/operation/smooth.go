package operation

import (
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
	"github.com/Faultbox/terrain-constructor/pkg/math"
)

// Smooth applies Iterations passes of Laplacian relaxation, moving each
// vertex to Amount*neighborAverage + (1-Amount)*position.
//
// Neighbors are counted once per triangle edge, so a neighbor reached
// through two triangles weighs twice.
type Smooth struct {
	Amount     float32
	Iterations uint32
}

func (Smooth) Kind() Kind { return KindSmooth }
func (Smooth) operation() {}

// Execute updates all vertices of a pass from the same snapshot.
// A vertex used by no triangle has no neighbors and keeps its position.
func (op Smooth) Execute(in mesh.Buffer, _ *rng.Source) mesh.Buffer {
	verts := in.Vertices
	sums := make([]math.Vec4, len(verts))

	for it := uint32(0); it < op.Iterations; it++ {
		clear(sums)

		// w accumulates the neighbor count since every position has w = 1.
		for t := 0; t < in.TriangleCount(); t++ {
			tri := in.Triangle(t)
			p0, p1, p2 := verts[tri[0]].Pos, verts[tri[1]].Pos, verts[tri[2]].Pos

			sums[tri[0]] = sums[tri[0]].Add(p1).Add(p2)
			sums[tri[1]] = sums[tri[1]].Add(p0).Add(p2)
			sums[tri[2]] = sums[tri[2]].Add(p0).Add(p1)
		}

		for i := range verts {
			s := sums[i]
			if s[3] == 0 {
				continue
			}
			p := &verts[i].Pos
			for k := 0; k < 3; k++ {
				target := s[k] / s[3]
				p[k] = op.Amount*target + (1-op.Amount)*p[k]
			}
			p[3] = 1
		}
	}

	return mesh.Buffer{Vertices: verts, Indices: in.Indices}
}
