package operation

import (
	gomath "math"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

var sqrt3 = float32(gomath.Sqrt(3))

// AddTriangle emits one equilateral triangle in the XZ plane, centered on
// the origin, with edge length Size.
type AddTriangle struct {
	Size float32
}

// AddTriSquare emits a Size x Size square as two triangles.
type AddTriSquare struct {
	Size float32
}

// AddTriangleGrid emits a (Subdivisions+1)^2 lattice with every other
// column shifted by half a row, giving a triangular tiling.
type AddTriangleGrid struct {
	Size         float32
	Subdivisions uint32
}

// AddTriSquareGrid emits a (Subdivisions+1)^2 lattice with each cell split
// along its diagonal.
type AddTriSquareGrid struct {
	Size         float32
	Subdivisions uint32
}

func (AddTriangle) Kind() Kind      { return KindAddTriangle }
func (AddTriSquare) Kind() Kind     { return KindAddTriSquare }
func (AddTriangleGrid) Kind() Kind  { return KindAddTriangleGrid }
func (AddTriSquareGrid) Kind() Kind { return KindAddTriSquareGrid }

func (AddTriangle) operation()      {}
func (AddTriSquare) operation()     {}
func (AddTriangleGrid) operation()  {}
func (AddTriSquareGrid) operation() {}

func (op AddTriangle) Execute(_ mesh.Buffer, _ *rng.Source) mesh.Buffer {
	s := op.Size
	return mesh.Buffer{
		Vertices: []mesh.Vertex{
			mesh.NewVertex(-0.5*s, 0, -sqrt3/6*s, 0, 0, 0),
			mesh.NewVertex(0.5*s, 0, -sqrt3/6*s, 0, 0, 0),
			mesh.NewVertex(0, 0, sqrt3/3*s, 0, 0, 0),
		},
		Indices: []uint32{0, 1, 2},
	}
}

func (op AddTriSquare) Execute(_ mesh.Buffer, _ *rng.Source) mesh.Buffer {
	h := 0.5 * op.Size
	return mesh.Buffer{
		Vertices: []mesh.Vertex{
			mesh.NewVertex(-h, 0, -h, 0, 0, 0),
			mesh.NewVertex(h, 0, -h, 0, 0, 0),
			mesh.NewVertex(h, 0, h, 0, 0, 0),
			mesh.NewVertex(-h, 0, h, 0, 0, 0),
		},
		Indices: []uint32{
			1, 2, 3,
			1, 3, 0,
		},
	}
}

// Execute lays columns along X. Subdivisions = 0 divides by zero and
// yields a single non-finite vertex.
func (op AddTriangleGrid) Execute(_ mesh.Buffer, _ *rng.Source) mesh.Buffer {
	num := op.Subdivisions + 1
	sub := float32(op.Subdivisions)
	out := mesh.Buffer{
		Vertices: make([]mesh.Vertex, 0, num*num),
		Indices:  make([]uint32, 0, 6*op.Subdivisions*op.Subdivisions),
	}

	for x := uint32(0); x < num; x++ {
		xWorld := (float32(x)/sub - 0.5) * op.Size * sqrt3 / 2
		even := x%2 == 0

		var shift float32
		if even {
			shift = 0.5
		}

		for z := uint32(0); z < num; z++ {
			zWorld := ((float32(z)-shift)/sub - 0.5) * op.Size
			out.Vertices = append(out.Vertices, mesh.NewVertex(xWorld, 0, zWorld, 0, 0, 0))

			if x == 0 || z == 0 {
				continue
			}

			// Winding flips with column parity to keep the mesh manifold.
			i := x*num + z
			if even {
				out.Indices = append(out.Indices,
					i, i-num-1, i-1,
					i, i-num, i-num-1,
				)
			} else {
				out.Indices = append(out.Indices,
					i, i-num, i-1,
					i-num, i-num-1, i-1,
				)
			}
		}
	}

	return out
}

// Execute spaces the lattice by Size/(Subdivisions+1), so the grid does
// not quite reach +Size/2.
func (op AddTriSquareGrid) Execute(_ mesh.Buffer, _ *rng.Source) mesh.Buffer {
	num := op.Subdivisions + 1
	out := mesh.Buffer{
		Vertices: make([]mesh.Vertex, 0, num*num),
		Indices:  make([]uint32, 0, 6*op.Subdivisions*op.Subdivisions),
	}

	for x := uint32(0); x < num; x++ {
		xWorld := (float32(x)/float32(num) - 0.5) * op.Size

		for z := uint32(0); z < num; z++ {
			zWorld := (float32(z)/float32(num) - 0.5) * op.Size
			out.Vertices = append(out.Vertices, mesh.NewVertex(xWorld, 0, zWorld, 0, 0, 0))

			if x == 0 || z == 0 {
				continue
			}

			i := x*num + z
			out.Indices = append(out.Indices,
				i, i-num-1, i-1,
				i, i-num, i-num-1,
			)
		}
	}

	return out
}
