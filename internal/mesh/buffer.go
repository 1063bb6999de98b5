package mesh

import "github.com/Faultbox/terrain-constructor/pkg/math"

// NewEdgeKey canonicalizes the edge between vertices a and b.
func NewEdgeKey(a, b uint32) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// TriangleCount returns the number of index triples.
func (b Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (b Buffer) Triangle(i int) [3]uint32 {
	return [3]uint32{b.Indices[3*i], b.Indices[3*i+1], b.Indices[3*i+2]}
}

// Clone returns a deep copy so the result shares no storage with b.
func (b Buffer) Clone() Buffer {
	out := Buffer{
		Vertices: make([]Vertex, len(b.Vertices)),
		Indices:  make([]uint32, len(b.Indices)),
	}
	copy(out.Vertices, b.Vertices)
	copy(out.Indices, b.Indices)
	return out
}

// Bounds returns the bounding box of all vertex positions.
// An empty buffer yields a zero box.
func (b Buffer) Bounds() Bounds {
	if len(b.Vertices) == 0 {
		return Bounds{}
	}

	bounds := Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
	for _, v := range b.Vertices {
		updateBounds(&bounds, v.Pos)
	}
	return bounds
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// updateBounds grows b to contain p. Non-finite components fail every
// comparison and are ignored.
func updateBounds(b *Bounds, p math.Vec4) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

// New wraps a finished buffer.
func New(b Buffer) *Mesh {
	return &Mesh{Buffer: b}
}
