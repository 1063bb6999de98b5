package operation

import (
	gomath "math"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

// Subdivide splits every triangle into four, Iterations times.
type Subdivide struct {
	Iterations uint32
}

// FractalTerrain subdivides like Subdivide and lifts each new midpoint by
// (u - 0.5) * DisplacementStart * DisplacementDecay^-iteration.
// A decay above 1 shrinks the displacement each iteration; a decay of 1
// or less keeps or grows it.
type FractalTerrain struct {
	Iterations        uint32
	DisplacementStart float32
	DisplacementDecay float32
}

func (Subdivide) Kind() Kind      { return KindSubdivide }
func (FractalTerrain) Kind() Kind { return KindFractalTerrain }

func (Subdivide) operation()      {}
func (FractalTerrain) operation() {}

func (op Subdivide) Execute(in mesh.Buffer, _ *rng.Source) mesh.Buffer {
	return refine(in, op.Iterations, func(_ uint32, a, b mesh.Vertex) mesh.Vertex {
		return mesh.Midpoint(a, b)
	})
}

// Execute draws once per created midpoint, in creation order.
func (op FractalTerrain) Execute(in mesh.Buffer, src *rng.Source) mesh.Buffer {
	return refine(in, op.Iterations, func(iteration uint32, a, b mesh.Vertex) mesh.Vertex {
		mid := mesh.Midpoint(a, b)
		decay := float32(gomath.Pow(float64(op.DisplacementDecay), -float64(iteration)))
		disp := op.DisplacementStart * decay
		mid.Pos[1] += (src.Unit() - 0.5) * disp
		return mid
	})
}

// triangleEdges lists the corner pairs of the edges ab, bc and ca.
// Their midpoints land in slots 3, 4 and 5 of the corner layout
// [a, b, c, mid_ab, mid_bc, mid_ca]:
//
//	      b
//	    /   \
//	 mid_ab--mid_bc
//	  /  \   /  \
//	a---mid_ca---c
var triangleEdges = [3][2]int{
	{0, 1},
	{1, 2},
	{2, 0},
}

// refine runs the 1-to-4 split. Every edge gets exactly one midpoint per
// iteration no matter how many triangles share it; the edge map is
// rebuilt each iteration because indices change.
func refine(in mesh.Buffer, iterations uint32, midpoint func(iteration uint32, a, b mesh.Vertex) mesh.Vertex) mesh.Buffer {
	verts := in.Vertices
	inds := in.Indices

	for it := uint32(0); it < iterations; it++ {
		mids := make(map[mesh.EdgeKey]uint32, len(inds))
		out := make([]uint32, 0, 4*len(inds))

		for t := 0; t+2 < len(inds); t += 3 {
			c := [6]uint32{inds[t], inds[t+1], inds[t+2]}

			for e, edge := range triangleEdges {
				a, b := c[edge[0]], c[edge[1]]
				key := mesh.NewEdgeKey(a, b)

				if m, ok := mids[key]; ok {
					c[3+e] = m
					continue
				}

				m := uint32(len(verts))
				mids[key] = m
				c[3+e] = m
				verts = append(verts, midpoint(it, verts[a], verts[b]))
			}

			out = append(out,
				c[0], c[3], c[5],
				c[3], c[1], c[4],
				c[5], c[3], c[4],
				c[5], c[4], c[2],
			)
		}

		inds = out
	}

	return mesh.Buffer{Vertices: verts, Indices: inds}
}
