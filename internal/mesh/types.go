// Package mesh holds the vertex/index representation passed between
// pipeline stages, plus the passes run on a finished buffer: normal
// accumulation and wireframe extraction.
package mesh

import (
	"sync"

	"github.com/Faultbox/terrain-constructor/pkg/math"
)

// Vertex is a mesh vertex with homogeneous position and normal.
// Pos[3] is 1 outside of interpolation. Normal[3] is the accumulation
// weight used by CalculateNormals.
type Vertex struct {
	Pos    math.Vec4
	Normal math.Vec4
}

// Buffer is the mutable mesh passed from stage to stage. Indices come in
// triples, each a valid offset into Vertices. Generators wind triangles so
// that (b-a) x (c-a) points along -Y.
type Buffer struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EdgeKey identifies an undirected edge by its (min, max) vertex indices.
type EdgeKey struct {
	A, B uint32
}

// Mesh is a finished buffer handed to rendering and export. The wireframe
// index list is derived at most once per Mesh.
type Mesh struct {
	Buffer

	wireOnce  sync.Once
	wireframe []uint32
}
