// Package operation implements the mesh-transforming stages of a terrain
// pipeline. Each stage consumes the previous buffer and the shared random
// stream and produces a new buffer.
package operation

import (
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

// Kind identifies an operation variant. Values keep their historical
// numbering, retired kinds included.
type Kind int

const (
	KindAddTriangle Kind = iota
	KindAddTriSquare
	KindAddTriangleGrid
	KindAddTriSquareGrid
	KindSubdivide
	KindSubdivideSmooth
	KindDisplaceRandom
	KindDisplaceSmooth
	KindSmooth
	KindMergeCleanup
	KindFractalTerrain
)

var kindInfo = [...]struct {
	name    string
	caption string
	retired bool
}{
	KindAddTriangle:      {"add_triangle", "Add Triangle", false},
	KindAddTriSquare:     {"add_tri_square", "Add Triangle Square", false},
	KindAddTriangleGrid:  {"add_triangle_grid", "Add Triangle Grid", false},
	KindAddTriSquareGrid: {"add_tri_square_grid", "Add Triangle Square Grid", false},
	KindSubdivide:        {"subdivide", "Subdivide", false},
	KindSubdivideSmooth:  {"subdivide_smooth", "Subdivide Smooth", true},
	KindDisplaceRandom:   {"displace_random", "Displace Random", false},
	KindDisplaceSmooth:   {"displace_smooth", "Displace Smooth", false},
	KindSmooth:           {"smooth", "Smooth", false},
	KindMergeCleanup:     {"merge_cleanup", "Merge Cleanup", true},
	KindFractalTerrain:   {"fractal_terrain", "Fractal Terrain", false},
}

// String returns the display caption.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return "Unknown"
	}
	return kindInfo[k].caption
}

// Name returns the snake_case identifier used in pipeline documents.
func (k Kind) Name() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return ""
	}
	return kindInfo[k].name
}

// Retired reports whether the kind is kept only for its number.
func (k Kind) Retired() bool {
	return k >= 0 && int(k) < len(kindInfo) && kindInfo[k].retired
}

// ParseKind looks up a kind by its document name.
func ParseKind(name string) (Kind, bool) {
	for k, info := range kindInfo {
		if info.name == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Operation is one pipeline stage. The set of implementations is closed:
// only this package defines them.
//
// Execute takes ownership of in and may modify it. Generators ignore in.
// Execute never fails; degenerate input produces non-finite values.
type Operation interface {
	Kind() Kind
	Execute(in mesh.Buffer, src *rng.Source) mesh.Buffer

	operation()
}

// Axes selects the X, Y and Z components a displacement applies to.
type Axes [3]bool

// String renders the enabled axes as a subset of "xyz".
func (a Axes) String() string {
	s := ""
	for i, name := range "xyz" {
		if a[i] {
			s += string(name)
		}
	}
	return s
}

// AxisY is the default vertical-only mask.
var AxisY = Axes{false, true, false}
