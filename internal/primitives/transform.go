package primitives

import (
	"sdf-engine/internal/vmath"
)

// Transform positions and orients a primitive op relative to its object's
// origin. Rotation is split into a committed quaternion and a tentative
// uncommitted delta: interactive edits (e.g. dragging a rotation gizmo) write
// the tentative part every frame and either commit it or throw it away, so
// cancelling a drag never has to reconstruct the previous rotation.
type Transform struct {
	// Center is the op position relative to the object origin.
	Center vmath.Vec3
	// Rotation is the committed rotation.
	Rotation vmath.Quat
	// TentativeRotation is an uncommitted delta applied on top of Rotation
	// for previews. Identity when no edit is in flight.
	TentativeRotation vmath.Quat
}

// NewTransform returns a transform with the given center and committed
// rotation and no tentative delta.
func NewTransform(center vmath.Vec3, rotation vmath.Quat) Transform {
	return Transform{
		Center:            center,
		Rotation:          rotation,
		TentativeRotation: vmath.QuatIdentity(),
	}
}

// DefaultTransform returns the identity transform at the object origin.
func DefaultTransform() Transform {
	return NewTransform(vmath.Vec3{}, vmath.QuatIdentity())
}

// TotalRotation returns the rotation including any tentative delta.
func (t Transform) TotalRotation() vmath.Quat {
	return t.TentativeRotation.Mul(t.Rotation).Normalize()
}

// SetTentativeRotation replaces the uncommitted delta without touching the
// committed rotation.
func (t *Transform) SetTentativeRotation(delta vmath.Quat) {
	t.TentativeRotation = delta
}

// CommitRotation folds the tentative delta into the committed rotation and
// clears it.
func (t *Transform) CommitRotation() {
	t.Rotation = t.TotalRotation()
	t.TentativeRotation = vmath.QuatIdentity()
}

// CancelRotation discards the tentative delta.
func (t *Transform) CancelRotation() {
	t.TentativeRotation = vmath.QuatIdentity()
}
