package mesh

import "github.com/Faultbox/terrain-constructor/pkg/math"

// NewVertex creates a vertex with w = 1 for both position and normal.
func NewVertex(x, y, z, nx, ny, nz float32) Vertex {
	return Vertex{
		Pos:    math.Vec4{x, y, z, 1},
		Normal: math.Vec4{nx, ny, nz, 1},
	}
}

// Midpoint returns the vertex halfway between a and b. The normal is
// copied from a and stays meaningless until normals are recalculated.
func Midpoint(a, b Vertex) Vertex {
	return Vertex{
		Pos:    a.Pos.Mid(b.Pos),
		Normal: a.Normal,
	}
}

// Position returns the cartesian position.
func (v Vertex) Position() math.Vec3 {
	return v.Pos.XYZ()
}
