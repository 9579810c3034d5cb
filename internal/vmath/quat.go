package vmath

import (
	"errors"

	"github.com/chewxy/math32"
)

// Quat is a rotation quaternion with W as the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the no-rotation quaternion.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// ErrZeroAxis is returned by AxisAngle when the rotation axis cannot be
// normalized.
var ErrZeroAxis = errors.New("rotation axis has zero length")

// AxisAngle returns the quaternion rotating by radians around axis. The axis
// does not need to be pre-normalized. Fails with ErrZeroAxis on a degenerate
// axis.
func AxisAngle(axis Vec3, radians float32) (Quat, error) {
	l := axis.Length()
	if l == 0 || math32.IsNaN(l) {
		return QuatIdentity(), ErrZeroAxis
	}
	n := axis.Scale(1 / l)
	half := radians / 2
	s := math32.Sin(half)
	return Quat{
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
		W: math32.Cos(half),
	}, nil
}

// MustAxisAngle is AxisAngle for axes known at compile time. Panics on a
// degenerate axis; construction-time programmer error, use AxisAngle for
// runtime input.
func MustAxisAngle(axis Vec3, radians float32) Quat {
	q, err := AxisAngle(axis, radians)
	if err != nil {
		panic("vmath: " + err.Error())
	}
	return q
}

// Mul returns the Hamilton product q*o, i.e. the rotation o followed by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Normalize returns the unit quaternion. A zero quaternion normalizes to
// identity so drifting edit chains can never produce an unusable rotation.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Mat3 returns the rotation matrix for q. q must be normalized.
func (q Quat) Mat3() Mat3 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Mat3{
		1 - (yy + zz), xy - wz, xz + wy,
		xy + wz, 1 - (xx + zz), yz - wx,
		xz - wy, yz + wx, 1 - (xx + yy),
	}
}

// Mat3 is a 3x3 matrix stored row-major: element (row r, col c) is at [r*3+c].
type Mat3 [9]float32

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Transpose returns the transposed matrix. For a rotation matrix this is its
// inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// MulVec3 returns m*v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Abs returns the matrix with every element replaced by its absolute value.
// Used for conservative AABB extents under rotation.
func (m Mat3) Abs() Mat3 {
	var out Mat3
	for i, e := range m {
		out[i] = math32.Abs(e)
	}
	return out
}
