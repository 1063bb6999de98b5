package preview

import (
	gomath "math"

	"github.com/Faultbox/terrain-constructor/internal/mesh"
	"github.com/Faultbox/terrain-constructor/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // vertical angle, radians
	Yaw      float32 // horizontal angle, radians

	FovY float32 // radians
}

// NewOrbitCamera creates a camera looking down at the origin.
func NewOrbitCamera(yaw, pitch float32) *OrbitCamera {
	return &OrbitCamera{
		Distance: 10,
		Pitch:    pitch,
		Yaw:      yaw,
		FovY:     float32(gomath.Pi / 3),
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns a perspective projection with near and far
// planes bracketing the orbit sphere.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	near := c.Distance * 0.01
	far := c.Distance * 4
	return math.Perspective(c.FovY, aspect, near, far)
}

// FitToBounds centers the camera on b and backs off until the bounding
// sphere fills the view. An empty or point-sized box keeps a unit radius.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	center := b.Center()
	c.Center = math.Vec3{X: center[0], Y: center[1], Z: center[2]}

	radius := math.Vec3{
		X: b.Max[0] - b.Min[0],
		Y: b.Max[1] - b.Min[1],
		Z: b.Max[2] - b.Min[2],
	}.Length() / 2
	if !(radius > 1e-6) || gomath.IsInf(float64(radius), 0) {
		radius = 1
	}

	c.Distance = radius / float32(gomath.Sin(float64(c.FovY)/2)) * 1.05
}
