package mesh

import "github.com/Faultbox/terrain-constructor/pkg/math"

// cornerOrder rotates each corner to the front so the corner sees its two
// adjacent edges in winding order.
//
//	   1
//	 /   \
//	2-----0
var cornerOrder = [3][3]int{
	{0, 1, 2},
	{1, 2, 0},
	{2, 0, 1},
}

// CalculateNormals recomputes every vertex normal as the unweighted mean of
// the unit face normals of the triangles using it. The input buffer is
// consumed; positions and indices are returned unchanged.
//
// A vertex used by no triangle, or a degenerate triangle, yields NaN
// components. Callers filter non-finite data downstream.
func CalculateNormals(b Buffer) Buffer {
	for i := range b.Vertices {
		b.Vertices[i].Normal = math.Vec4{}
	}

	for t := 0; t < b.TriangleCount(); t++ {
		tri := b.Triangle(t)

		for _, order := range cornerOrder {
			i1, i2, i3 := tri[order[0]], tri[order[1]], tri[order[2]]

			p1 := b.Vertices[i1].Position()
			edge1 := b.Vertices[i2].Position().Sub(p1)
			edge2 := b.Vertices[i3].Position().Sub(p1)

			n := edge1.Cross(edge2).Unit().Extend(1)
			b.Vertices[i1].Normal = b.Vertices[i1].Normal.Add(n)
		}
	}

	for i := range b.Vertices {
		n := &b.Vertices[i].Normal
		w := n[3]
		*n = math.Vec4{n[0] / w, n[1] / w, n[2] / w, n[3] / w}
	}

	return b
}
