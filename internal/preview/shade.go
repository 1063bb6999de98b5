package preview

import (
	gomath "math"

	"github.com/Faultbox/terrain-constructor/pkg/math"
)

// Material blends between rock on steep faces and grass on flat ones.
// A face is grass when |n.y| is above Threshold; Smoothness widens the
// transition band on both sides.
type Material struct {
	Threshold  float32
	Smoothness float32
}

// DefaultMaterial matches the viewer's initial sliders.
func DefaultMaterial() Material {
	return Material{Threshold: 0.7, Smoothness: 0.1}
}

var (
	rockColor  = [3]float32{0.45, 0.42, 0.40}
	grassColor = [3]float32{0.30, 0.55, 0.22}
	wireColor  = [3]uint8{220, 220, 220}
	background = [3]uint8{28, 30, 36}

	lightDir = math.Vec3{X: 0.4, Y: 1, Z: 0.3}.Normalize()
)

const (
	ambient = 0.35
	direct  = 0.65
)

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}

// Shade returns the lit surface color for unit normal n. Lighting is
// double-sided since generated winding faces down.
func (m Material) Shade(n math.Vec3) [3]uint8 {
	ny := float32(gomath.Abs(float64(n.Y)))
	t := smoothstep(m.Threshold-m.Smoothness, m.Threshold+m.Smoothness, ny)

	ndl := float32(gomath.Abs(float64(n.Dot(lightDir))))
	light := ambient + direct*ndl

	var out [3]uint8
	for k := range out {
		c := (rockColor[k]*(1-t) + grassColor[k]*t) * light
		out[k] = clamp255(c * 255)
	}
	return out
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
