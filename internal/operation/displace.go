package operation

import (
	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/internal/noise"
	"github.com/Faultbox/terrain-constructor/internal/rng"
)

// DisplaceRandom shifts every vertex along the enabled axes by
// Amount * u, with u drawn from [0, 1]. The shift is always positive.
type DisplaceRandom struct {
	Amount float32
	Axes   Axes
}

// DisplaceSmooth shifts every vertex along the enabled axes by a fractal
// sum of Octaves noise fields sampled at position/Scale.
type DisplaceSmooth struct {
	Amount  float32
	Scale   float32
	Octaves uint32
	Axes    Axes
}

func (DisplaceRandom) Kind() Kind { return KindDisplaceRandom }
func (DisplaceSmooth) Kind() Kind { return KindDisplaceSmooth }

func (DisplaceRandom) operation() {}
func (DisplaceSmooth) operation() {}

// Execute draws once per enabled axis per vertex, in vertex order.
func (op DisplaceRandom) Execute(in mesh.Buffer, src *rng.Source) mesh.Buffer {
	for i := range in.Vertices {
		v := &in.Vertices[i]
		for axis, enabled := range op.Axes {
			if enabled {
				v.Pos[axis] += src.Unit() * op.Amount
			}
		}
	}
	return in
}

// Execute seeds one field per octave before visiting any vertex. Each
// axis samples at the vertex's current position, so a later axis sees the
// shift already applied by an earlier one. Zero octaves leave the mesh
// untouched.
func (op DisplaceSmooth) Execute(in mesh.Buffer, src *rng.Source) mesh.Buffer {
	if op.Octaves == 0 {
		return in
	}

	fields := make(noise.Octaves, op.Octaves)
	for i := range fields {
		fields[i] = noise.NewField(src.Uint32())
	}

	for i := range in.Vertices {
		v := &in.Vertices[i]
		for axis, enabled := range op.Axes {
			if !enabled {
				continue
			}
			x := float64(v.Pos[0] / op.Scale)
			y := float64(v.Pos[1] / op.Scale)
			z := float64(v.Pos[2] / op.Scale)
			v.Pos[axis] += fields.Sample(x, y, z) * op.Amount
		}
	}
	return in
}
