package math

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float32

// XYZ drops the fourth component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Add returns v + other, component-wise including w.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v[0] + other[0], v[1] + other[1], v[2] + other[2], v[3] + other[3]}
}

// Scale returns v * s, component-wise including w.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Mid returns the component-wise mean of v and other.
func (v Vec4) Mid(other Vec4) Vec4 {
	return Vec4{
		v[0]*0.5 + other[0]*0.5,
		v[1]*0.5 + other[1]*0.5,
		v[2]*0.5 + other[2]*0.5,
		v[3]*0.5 + other[3]*0.5,
	}
}
