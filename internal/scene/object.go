package scene

import (
	"fmt"
	"slices"

	"sdf-engine/internal/id"
	"sdf-engine/internal/primitives"
	"sdf-engine/internal/vmath"
)

// ObjectId is the stable identity of an Object within one ObjectCollection.
// Recycled only after the object is fully removed.
type ObjectId id.UniqueId

// PrimitiveOpId identifies a primitive op within its owning object's
// namespace. Ids from different objects are unrelated.
type PrimitiveOpId id.UniqueId

// PrimitiveOp is one step of an object's CSG sequence: combine primitive
// (placed by transform) with the accumulated shape using op. Always fully
// formed; there is no partial or null state.
type PrimitiveOp struct {
	Id        PrimitiveOpId
	Op        Operation
	Primitive primitives.Primitive
	Transform primitives.Transform
	// Blend softens the combination; 0 is a hard boolean.
	Blend float32
}

// OpNotFoundError is returned when a PrimitiveOpId does not exist in the
// object, e.g. because a concurrent edit removed it. Recoverable: callers
// log and no-op.
type OpNotFoundError struct {
	ObjectId ObjectId
	OpId     PrimitiveOpId
}

func (e OpNotFoundError) Error() string {
	return fmt.Sprintf("object %d has no primitive op %d", e.ObjectId, e.OpId)
}

// Object is a named entity whose geometry is an ordered sequence of primitive
// ops; the order is the CSG evaluation order. Objects are created and owned
// by an ObjectCollection.
type Object struct {
	id     ObjectId
	name   string
	origin vmath.Vec3
	ops    []PrimitiveOp
	opIds  *id.Generator
}

func newObject(objectId ObjectId, name string, origin vmath.Vec3, base PrimitiveOp) (*Object, error) {
	o := &Object{
		id:     objectId,
		name:   name,
		origin: origin,
		opIds:  id.NewGenerator(),
	}
	if _, err := o.AppendOp(base.Op, base.Primitive, base.Transform, base.Blend); err != nil {
		return nil, err
	}
	return o, nil
}

// Id returns the object's stable identity.
func (o *Object) Id() ObjectId { return o.id }

// Name returns the display name.
func (o *Object) Name() string { return o.name }

// SetName sets the display name.
func (o *Object) SetName(name string) { o.name = name }

// Origin returns the object origin in world space.
func (o *Object) Origin() vmath.Vec3 { return o.origin }

// SetOrigin moves the object origin in world space.
func (o *Object) SetOrigin(origin vmath.Vec3) { o.origin = origin }

// Ops returns the primitive op sequence in evaluation order. The returned
// slice is the object's own storage; callers must not hold it across
// mutations.
func (o *Object) Ops() []PrimitiveOp { return o.ops }

// AppendOp allocates an op id scoped to this object and appends the op to the
// end of the sequence.
func (o *Object) AppendOp(op Operation, primitive primitives.Primitive, transform primitives.Transform, blend float32) (PrimitiveOpId, error) {
	opId, err := o.opIds.NewId()
	if err != nil {
		return PrimitiveOpId(id.Invalid), fmt.Errorf("allocating primitive op id: %w", err)
	}
	o.ops = append(o.ops, PrimitiveOp{
		Id:        PrimitiveOpId(opId),
		Op:        op,
		Primitive: primitive,
		Transform: transform,
		Blend:     blend,
	})
	return PrimitiveOpId(opId), nil
}

// Op returns a pointer into the sequence for in-place edits, or an
// OpNotFoundError. The pointer is invalidated by any sequence mutation.
func (o *Object) Op(opId PrimitiveOpId) (*PrimitiveOp, error) {
	for i := range o.ops {
		if o.ops[i].Id == opId {
			return &o.ops[i], nil
		}
	}
	return nil, OpNotFoundError{ObjectId: o.id, OpId: opId}
}

// UpdateOp replaces the op's operation, primitive, transform and blend,
// keeping its id and position in the sequence.
func (o *Object) UpdateOp(opId PrimitiveOpId, op Operation, primitive primitives.Primitive, transform primitives.Transform, blend float32) error {
	target, err := o.Op(opId)
	if err != nil {
		return err
	}
	target.Op = op
	target.Primitive = primitive
	target.Transform = transform
	target.Blend = blend
	return nil
}

// RemoveOp removes the op from the sequence and recycles its id within this
// object's namespace.
func (o *Object) RemoveOp(opId PrimitiveOpId) error {
	for i := range o.ops {
		if o.ops[i].Id != opId {
			continue
		}
		o.ops = slices.Delete(o.ops, i, i+1)
		return o.opIds.RecycleId(id.UniqueId(opId))
	}
	return OpNotFoundError{ObjectId: o.id, OpId: opId}
}

// ShiftOp moves the op to index newIndex, preserving the relative order of
// the others. newIndex is clamped to the sequence bounds.
func (o *Object) ShiftOp(opId PrimitiveOpId, newIndex int) error {
	from := -1
	for i := range o.ops {
		if o.ops[i].Id == opId {
			from = i
			break
		}
	}
	if from < 0 {
		return OpNotFoundError{ObjectId: o.id, OpId: opId}
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex >= len(o.ops) {
		newIndex = len(o.ops) - 1
	}
	op := o.ops[from]
	o.ops = slices.Delete(o.ops, from, from+1)
	o.ops = slices.Insert(o.ops, newIndex, op)
	return nil
}

// AABB returns a conservative world-space bounding box over all ops.
func (o *Object) AABB() AABB {
	return opsAABB(o.origin, o.ops)
}

func opsAABB(origin vmath.Vec3, ops []PrimitiveOp) AABB {
	if len(ops) == 0 {
		return AABB{Center: origin}
	}
	box := opAABB(origin, ops[0])
	for _, op := range ops[1:] {
		box = box.Union(opAABB(origin, op))
	}
	return box
}

// opAABB bounds one op: half extents are grown through the absolute rotation
// matrix so the box stays conservative under any orientation.
func opAABB(origin vmath.Vec3, op PrimitiveOp) AABB {
	center := origin.
		Add(op.Transform.Center).
		Add(primitives.LocalCenter(op.Primitive))
	extent := op.Transform.TotalRotation().Mat3().Abs().
		MulVec3(primitives.HalfExtent(op.Primitive))
	return AABB{Center: center, HalfExtent: extent.Abs()}
}
