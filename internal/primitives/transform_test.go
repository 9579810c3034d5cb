package primitives

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"sdf-engine/internal/vmath"
)

func TestDefaultTransformIsIdentity(t *testing.T) {
	tr := DefaultTransform()
	assert.Equal(t, vmath.Vec3{}, tr.Center)
	assert.Equal(t, vmath.QuatIdentity(), tr.Rotation)
	assert.Equal(t, vmath.QuatIdentity(), tr.TotalRotation())
}

func TestTentativeRotationPreviews(t *testing.T) {
	tr := NewTransform(vmath.Vec3{}, vmath.MustAxisAngle(vmath.V3(0, 1, 0), math32.Pi/2))
	delta := vmath.MustAxisAngle(vmath.V3(0, 1, 0), math32.Pi/4)

	tr.SetTentativeRotation(delta)
	want := vmath.MustAxisAngle(vmath.V3(0, 1, 0), 3*math32.Pi/4)
	got := tr.TotalRotation()
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.W, got.W, 1e-5)
	// The committed part is untouched while the preview is in flight.
	assert.InDelta(t, float64(math32.Sin(math32.Pi/4)), float64(tr.Rotation.Y), 1e-5)
}

func TestCommitRotationFoldsAndClears(t *testing.T) {
	tr := DefaultTransform()
	delta := vmath.MustAxisAngle(vmath.V3(1, 0, 0), 0.3)
	tr.SetTentativeRotation(delta)

	tr.CommitRotation()
	assert.Equal(t, vmath.QuatIdentity(), tr.TentativeRotation)
	assert.InDelta(t, delta.X, tr.Rotation.X, 1e-5)
	assert.InDelta(t, delta.W, tr.Rotation.W, 1e-5)
}

func TestCancelRotationKeepsCommitted(t *testing.T) {
	committed := vmath.MustAxisAngle(vmath.V3(0, 0, 1), 0.5)
	tr := NewTransform(vmath.Vec3{}, committed)
	tr.SetTentativeRotation(vmath.MustAxisAngle(vmath.V3(0, 0, 1), 1))

	tr.CancelRotation()
	assert.Equal(t, committed, tr.Rotation)
	assert.Equal(t, vmath.QuatIdentity(), tr.TentativeRotation)
}
