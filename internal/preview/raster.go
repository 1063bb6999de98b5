package preview

import (
	gomath "math"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/pkg/math"
)

// screenVertex is a vertex after projection: pixel coordinates plus NDC
// depth. ok is false for non-finite input and for points behind the eye.
type screenVertex struct {
	x, y, z float32
	ok      bool
}

func project(verts []mesh.Vertex, viewProj math.Mat4, w, h int) []screenVertex {
	out := make([]screenVertex, len(verts))
	for i, v := range verts {
		p := v.Position()
		if !p.IsFinite() {
			continue
		}
		c := viewProj.MulVec4(p.Extend(1))
		if !(c[3] > 1e-6) {
			continue
		}
		out[i] = screenVertex{
			x:  (c[0]/c[3] + 1) * 0.5 * float32(w),
			y:  (1 - c[1]/c[3]) * 0.5 * float32(h),
			z:  c[2] / c[3],
			ok: true,
		}
	}
	return out
}

// rasterizeTriangle fills one triangle with a z-buffer test. With flat set
// the whole face takes the color of n[0]; otherwise the normal is
// interpolated across the face and shaded per pixel.
func rasterizeTriangle(fb *frameBuffer, p [3]screenVertex, n [3]math.Vec3, flat bool, mat Material) {
	x0, y0, z0 := p[0].x, p[0].y, p[0].z
	x1, y1, z1 := p[1].x, p[1].y, p[1].z
	x2, y2, z2 := p[2].x, p[2].y, p[2].z

	// Bounding box
	minX := max(0, int(gomath.Floor(float64(min(x0, x1, x2)))))
	maxX := min(fb.width-1, int(gomath.Ceil(float64(max(x0, x1, x2)))))
	minY := max(0, int(gomath.Floor(float64(min(y0, y1, y2)))))
	maxY := min(fb.height-1, int(gomath.Ceil(float64(max(y0, y1, y2)))))
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	var faceColor [3]uint8
	if flat {
		faceColor = mat.Shade(n[0])
	}

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - y2
		rowOff := sy * fb.width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1

			if w0 < -1e-4 || w1 < -1e-4 || w2 < -1e-4 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			if z >= fb.depth[rowOff+sx] {
				continue
			}
			fb.depth[rowOff+sx] = z

			c := faceColor
			if !flat {
				normal := n[0].Scale(w0).Add(n[1].Scale(w1)).Add(n[2].Scale(w2)).Normalize()
				c = mat.Shade(normal)
			}
			fb.set(sx, sy, c)
		}
	}
}

// drawLine plots a square brush of side thick along a to b. Lines reaching
// far outside the target are dropped rather than clipped.
func drawLine(fb *frameBuffer, a, b screenVertex, thick int, c [3]uint8) {
	limitX, limitY := float32(2*fb.width), float32(2*fb.height)
	for _, v := range [2]screenVertex{a, b} {
		if v.x < -limitX || v.x > limitX || v.y < -limitY || v.y > limitY {
			return
		}
	}

	dx, dy := b.x-a.x, b.y-a.y
	steps := int(gomath.Ceil(float64(max(abs32(dx), abs32(dy)))))
	if steps == 0 {
		steps = 1
	}

	half := thick / 2
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		cx := int(a.x + dx*t)
		cy := int(a.y + dy*t)
		for y := cy - half; y < cy-half+thick; y++ {
			if y < 0 || y >= fb.height {
				continue
			}
			for x := cx - half; x < cx-half+thick; x++ {
				if x < 0 || x >= fb.width {
					continue
				}
				fb.set(x, y, c)
			}
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
