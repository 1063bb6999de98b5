package pipeline

import (
	"slices"
	"testing"
	"time"

	"github.com/Faultbox/terrain-constructor/internal/operation"
)

func terrainStages() []Stage {
	ops := []operation.Operation{
		operation.AddTriangleGrid{Size: 10, Subdivisions: 4},
		operation.FractalTerrain{Iterations: 3, DisplacementStart: 2, DisplacementDecay: 2},
		operation.DisplaceRandom{Amount: 0.2, Axes: operation.Axes{true, true, true}},
		operation.DisplaceSmooth{Amount: 1, Scale: 2, Octaves: 3, Axes: operation.AxisY},
		operation.Smooth{Amount: 0.5, Iterations: 2},
	}
	stages := make([]Stage, len(ops))
	for i, op := range ops {
		stages[i] = Stage{Op: op}
	}
	return stages
}

func TestRunDeterministic(t *testing.T) {
	for _, seed := range []int64{0, 1, 12345, 1 << 40} {
		a := Run(terrainStages(), seed, 100)
		b := Run(terrainStages(), seed, 100)

		if a.Seed != uint64(seed) {
			t.Errorf("seed = %d, want %d", a.Seed, seed)
		}
		if !slices.Equal(a.Mesh.Vertices, b.Mesh.Vertices) {
			t.Errorf("seed %d: vertices differ between runs", seed)
		}
		if !slices.Equal(a.Mesh.Indices, b.Mesh.Indices) {
			t.Errorf("seed %d: indices differ between runs", seed)
		}
	}
}

func TestRunSeedsDiffer(t *testing.T) {
	a := Run(terrainStages(), 1, 100)
	b := Run(terrainStages(), 2, 100)
	if slices.Equal(a.Mesh.Vertices, b.Mesh.Vertices) {
		t.Error("different seeds produced the same mesh")
	}
}

func TestRunFreshSeedIsReproducible(t *testing.T) {
	a := Run(terrainStages(), FreshSeed, 100)
	if a.Seed > 0xffffffff {
		t.Errorf("fresh seed %d exceeds uint32", a.Seed)
	}

	b := Run(terrainStages(), int64(a.Seed), 100)
	if !slices.Equal(a.Mesh.Vertices, b.Mesh.Vertices) {
		t.Error("recorded seed did not reproduce the mesh")
	}
}

func TestRunPartial(t *testing.T) {
	stages := terrainStages()
	for i := range stages {
		stages[i].Elapsed = time.Second
	}

	res := Run(stages, 3, 1)
	for i := 2; i < len(stages); i++ {
		if stages[i].Elapsed != 0 {
			t.Errorf("stage %d elapsed = %v, want 0 after partial run", i, stages[i].Elapsed)
		}
	}

	// 32 grid triangles, three fractal iterations.
	if got, want := res.Mesh.TriangleCount(), 32*64; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}

	full := Run(terrainStages(), 3, 1)
	if !slices.Equal(res.Mesh.Vertices, full.Mesh.Vertices) {
		t.Error("prefix run depends on the stages after it")
	}
}

func TestRunComputesNormals(t *testing.T) {
	res := Run([]Stage{{Op: operation.AddTriangle{Size: 5}}}, 0, 0)

	if len(res.Mesh.Vertices) != 3 || res.Mesh.TriangleCount() != 1 {
		t.Fatalf("got %d vertices, %d triangles", len(res.Mesh.Vertices), res.Mesh.TriangleCount())
	}
	n0 := res.Mesh.Vertices[0].Normal
	for i, v := range res.Mesh.Vertices {
		for k := 0; k < 3; k++ {
			if d := v.Normal[k] - n0[k]; d > 1e-6 || d < -1e-6 {
				t.Errorf("vertex %d normal %v differs from %v", i, v.Normal, n0)
				break
			}
		}
	}
	if n0[3] != 1 {
		t.Errorf("normal weight = %v, want 1", n0[3])
	}
}

func TestRunEmpty(t *testing.T) {
	res := Run(nil, 5, 0)
	if len(res.Mesh.Vertices) != 0 || len(res.Mesh.Indices) != 0 {
		t.Error("empty pipeline produced geometry")
	}
}
