package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sdf-engine/internal/primitives"
	"sdf-engine/internal/vmath"
)

func sphereOp(op Operation, radius float32) PrimitiveOp {
	return PrimitiveOp{
		Op:        op,
		Primitive: primitives.NewSphere(vmath.Vec3{}, radius),
		Transform: primitives.DefaultTransform(),
	}
}

func testObject(t *testing.T) (*ObjectCollection, *Object) {
	t.Helper()
	c := NewObjectCollection(zap.NewNop())
	objectId, err := c.NewObject("test", vmath.Vec3{}, sphereOp(OpUnion, 1))
	require.NoError(t, err)
	o, err := c.Get(objectId)
	require.NoError(t, err)
	return c, o
}

func TestOpsKeepAppendOrder(t *testing.T) {
	_, o := testObject(t)
	b, err := o.AppendOp(OpSubtraction, primitives.NewSphere(vmath.Vec3{}, 2), primitives.DefaultTransform(), 0)
	require.NoError(t, err)
	c, err := o.AppendOp(OpIntersection, primitives.NewSphere(vmath.Vec3{}, 3), primitives.DefaultTransform(), 0)
	require.NoError(t, err)

	ops := o.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, OpUnion, ops[0].Op)
	assert.Equal(t, b, ops[1].Id)
	assert.Equal(t, c, ops[2].Id)
}

func TestRemoveOpLeavesOthersValid(t *testing.T) {
	_, o := testObject(t)
	b, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 2), primitives.DefaultTransform(), 0)
	require.NoError(t, err)
	c, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 3), primitives.DefaultTransform(), 0)
	require.NoError(t, err)

	require.NoError(t, o.RemoveOp(b))

	_, err = o.Op(b)
	var notFound OpNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, b, notFound.OpId)

	kept, err := o.Op(c)
	require.NoError(t, err)
	assert.Equal(t, float32(3), kept.Primitive.(primitives.Sphere).Radius)

	// The removed op's id is recycled within this object's namespace.
	reused, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 4), primitives.DefaultTransform(), 0)
	require.NoError(t, err)
	assert.Equal(t, b, reused)
}

func TestRemoveMissingOpFails(t *testing.T) {
	_, o := testObject(t)
	var notFound OpNotFoundError
	assert.ErrorAs(t, o.RemoveOp(99), &notFound)
}

func TestUpdateOpKeepsIdAndPosition(t *testing.T) {
	_, o := testObject(t)
	b, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 2), primitives.DefaultTransform(), 0)
	require.NoError(t, err)

	cube := primitives.NewCube(vmath.Vec3{}, vmath.V3(1, 1, 1))
	require.NoError(t, o.UpdateOp(b, OpSubtraction, cube, primitives.DefaultTransform(), 0.5))

	ops := o.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, b, ops[1].Id)
	assert.Equal(t, OpSubtraction, ops[1].Op)
	assert.Equal(t, cube, ops[1].Primitive)
	assert.Equal(t, float32(0.5), ops[1].Blend)
}

func TestShiftOpReordersAndClamps(t *testing.T) {
	_, o := testObject(t)
	a := o.Ops()[0].Id
	b, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 2), primitives.DefaultTransform(), 0)
	require.NoError(t, err)
	c, err := o.AppendOp(OpUnion, primitives.NewSphere(vmath.Vec3{}, 3), primitives.DefaultTransform(), 0)
	require.NoError(t, err)

	require.NoError(t, o.ShiftOp(c, 0))
	assert.Equal(t, []PrimitiveOpId{c, a, b}, opIds(o))

	// Out-of-range targets clamp to the sequence bounds.
	require.NoError(t, o.ShiftOp(c, 99))
	assert.Equal(t, []PrimitiveOpId{a, b, c}, opIds(o))
	require.NoError(t, o.ShiftOp(b, -5))
	assert.Equal(t, []PrimitiveOpId{b, a, c}, opIds(o))
}

func opIds(o *Object) []PrimitiveOpId {
	ids := make([]PrimitiveOpId, len(o.Ops()))
	for i, op := range o.Ops() {
		ids[i] = op.Id
	}
	return ids
}

func TestAABBEnclosesAllOps(t *testing.T) {
	c := NewObjectCollection(zap.NewNop())
	objectId, err := c.NewObject("spread", vmath.V3(10, 0, 0), PrimitiveOp{
		Op:        OpUnion,
		Primitive: primitives.NewSphere(vmath.V3(-2, 0, 0), 1),
		Transform: primitives.DefaultTransform(),
	})
	require.NoError(t, err)
	o, err := c.Get(objectId)
	require.NoError(t, err)
	_, err = o.AppendOp(OpUnion, primitives.NewSphere(vmath.V3(2, 0, 0), 1), primitives.DefaultTransform(), 0)
	require.NoError(t, err)

	box := o.AABB()
	assert.InDelta(t, 10, box.Center.X, 1e-5)
	assert.InDelta(t, 3, box.HalfExtent.X, 1e-5)
	assert.InDelta(t, 1, box.HalfExtent.Y, 1e-5)
}

func TestAABBStaysConservativeUnderRotation(t *testing.T) {
	c := NewObjectCollection(zap.NewNop())
	rot := vmath.MustAxisAngle(vmath.V3(0, 1, 0), math32.Pi/4)
	objectId, err := c.NewObject("tilted", vmath.Vec3{}, PrimitiveOp{
		Op:        OpUnion,
		Primitive: primitives.NewCube(vmath.Vec3{}, vmath.V3(2, 2, 2)),
		Transform: primitives.NewTransform(vmath.Vec3{}, rot),
	})
	require.NoError(t, err)
	o, err := c.Get(objectId)
	require.NoError(t, err)

	// A unit-half cube turned 45 degrees spans sqrt(2) along X and Z.
	box := o.AABB()
	assert.InDelta(t, math32.Sqrt2, box.HalfExtent.X, 1e-5)
	assert.InDelta(t, 1, box.HalfExtent.Y, 1e-5)
	assert.InDelta(t, math32.Sqrt2, box.HalfExtent.Z, 1e-5)
}
