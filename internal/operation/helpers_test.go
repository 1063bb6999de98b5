package operation

import (
	"github.com/Faultbox/terrain-constructor/internal/mesh"
)

// faceY returns the Y component of (b-a) x (c-a) for triangle t.
func faceY(b mesh.Buffer, t int) float32 {
	tri := b.Triangle(t)
	p0 := b.Vertices[tri[0]].Position()
	e1 := b.Vertices[tri[1]].Position().Sub(p0)
	e2 := b.Vertices[tri[2]].Position().Sub(p0)
	return e1.Cross(e2).Y
}

// checkIndices fails if the index list is not whole triangles over valid vertices.
func checkIndices(b mesh.Buffer) (string, bool) {
	if len(b.Indices)%3 != 0 {
		return "index count not a multiple of 3", false
	}
	for _, i := range b.Indices {
		if int(i) >= len(b.Vertices) {
			return "index out of range", false
		}
	}
	return "", true
}

func quad() mesh.Buffer {
	return AddTriSquare{Size: 2}.Execute(mesh.Buffer{}, nil)
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
