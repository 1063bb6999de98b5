package operation

import (
	"testing"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

func TestSmoothZeroAmountIsIdentity(t *testing.T) {
	in := DisplaceRandom{Amount: 1, Axes: Axes{true, true, true}}.Execute(gridBuffer(), rng.New(1))
	orig := in.Clone()

	b := Smooth{Amount: 0, Iterations: 5}.Execute(in, nil)
	for i := range b.Vertices {
		if b.Vertices[i].Pos != orig.Vertices[i].Pos {
			t.Fatalf("vertex %d = %v, want %v", i, b.Vertices[i].Pos, orig.Vertices[i].Pos)
		}
	}
}

func TestSmoothKeepsUnusedVertices(t *testing.T) {
	// A zero-subdivision grid is a single vertex with no triangles.
	in := AddTriSquareGrid{Size: 4, Subdivisions: 0}.Execute(mesh.Buffer{}, nil)
	in.Vertices = append(in.Vertices, quad().Vertices...)
	in.Indices = []uint32{1, 2, 3, 1, 3, 4}
	orig := in.Clone()

	for _, amount := range []float32{0, 0.5, 1} {
		b := Smooth{Amount: amount, Iterations: 3}.Execute(in.Clone(), nil)
		if b.Vertices[0].Pos != orig.Vertices[0].Pos {
			t.Errorf("amount %v: unused vertex = %v, want %v", amount, b.Vertices[0].Pos, orig.Vertices[0].Pos)
		}
	}
}

func TestSmoothFullAmountSnapsToNeighbors(t *testing.T) {
	in := quad()
	in.Vertices[0].Pos[1] = 4
	p := make([][4]float32, len(in.Vertices))
	for i, v := range in.Vertices {
		p[i] = v.Pos
	}

	b := Smooth{Amount: 1, Iterations: 1}.Execute(in, nil)

	// Triangles (1,2,3) and (1,3,0). Vertex 3 reaches 1 through both.
	avg := func(ids ...int) [4]float32 {
		var s [4]float32
		for _, id := range ids {
			for k := 0; k < 3; k++ {
				s[k] += p[id][k]
			}
		}
		n := float32(len(ids))
		return [4]float32{s[0] / n, s[1] / n, s[2] / n, 1}
	}
	want := [][4]float32{
		avg(1, 3),
		avg(2, 3, 3, 0),
		avg(1, 3),
		avg(1, 2, 1, 0),
	}

	for i, w := range want {
		got := b.Vertices[i].Pos
		for k := 0; k < 4; k++ {
			if !approx(got[k], w[k]) {
				t.Errorf("vertex %d = %v, want %v", i, got, w)
				break
			}
		}
	}
}

func TestSmoothSimultaneousUpdate(t *testing.T) {
	// With in-place updates the result would depend on vertex order;
	// reversing the triangle order must not change anything.
	in := DisplaceRandom{Amount: 1, Axes: AxisY}.Execute(gridBuffer(), rng.New(3))
	rev := in.Clone()
	n := rev.TriangleCount()
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		for k := 0; k < 3; k++ {
			rev.Indices[3*i+k], rev.Indices[3*j+k] = rev.Indices[3*j+k], rev.Indices[3*i+k]
		}
	}

	a := Smooth{Amount: 0.5, Iterations: 1}.Execute(in, nil)
	b := Smooth{Amount: 0.5, Iterations: 1}.Execute(rev, nil)
	for i := range a.Vertices {
		for k := 0; k < 3; k++ {
			if !approx(a.Vertices[i].Pos[k], b.Vertices[i].Pos[k]) {
				t.Fatalf("vertex %d depends on triangle order", i)
			}
		}
	}
}

func TestSmoothFlattensNoise(t *testing.T) {
	in := DisplaceRandom{Amount: 1, Axes: AxisY}.Execute(gridBuffer(), rng.New(9))
	spread := func(b mesh.Buffer) float32 {
		bounds := b.Bounds()
		return bounds.Max[1] - bounds.Min[1]
	}
	before := spread(in)
	after := spread(Smooth{Amount: 1, Iterations: 4}.Execute(in.Clone(), nil))
	if after >= before {
		t.Errorf("height spread %v -> %v, want smaller", before, after)
	}
}
