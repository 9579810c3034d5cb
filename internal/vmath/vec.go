// Package vmath provides the float32 vector and rotation math used by the
// scene model and the GPU encoder. Values match GLSL layout conventions so
// encoded data can be compared word-for-word against the shader decoder.
package vmath

import (
	"github.com/chewxy/math32"
)

// Vec2 is a 2D float32 vector.
type Vec2 struct {
	X, Y float32
}

// V2 returns a Vec2 with the given components.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec3 is a 3D float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// V3 returns a Vec3 with the given components.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// V3Scalar returns a Vec3 with all components set to s.
func V3Scalar(s float32) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul multiplies component-wise.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y), math32.Max(v.Z, o.Z)}
}

// Min returns the component-wise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math32.Min(v.X, o.X), math32.Min(v.Y, o.Y), math32.Min(v.Z, o.Z)}
}

// Vec4 is a 4D float32 vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 returns a Vec4 with the given components.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// XYZ returns the first three components as a Vec3.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
