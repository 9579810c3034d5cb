package engine

import (
	"sdf-engine/internal/primitives"
	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

// OpSpec carries everything needed to create or replace one primitive op.
type OpSpec struct {
	Op        scene.Operation
	Primitive primitives.Primitive
	Transform primitives.Transform
	Blend     float32
}

// EditCommand is the closed set of scene mutations callers submit to the
// engine. Commands are applied on the engine goroutine only; a command
// naming an id that no longer exists is logged and dropped.
type EditCommand interface {
	isEditCommand()
}

// CreateObject creates an object seeded with one primitive op.
type CreateObject struct {
	Name   string
	Origin vmath.Vec3
	Base   OpSpec
}

// RemoveObject removes an object and everything it owns.
type RemoveObject struct {
	Id scene.ObjectId
}

// SetOrigin moves an object in world space.
type SetOrigin struct {
	Id     scene.ObjectId
	Origin vmath.Vec3
}

// SetName renames an object.
type SetName struct {
	Id   scene.ObjectId
	Name string
}

// PushOp appends a primitive op to an object's sequence.
type PushOp struct {
	ObjectId scene.ObjectId
	Spec     OpSpec
}

// UpdateOp replaces an existing op in place.
type UpdateOp struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
	Spec     OpSpec
}

// RemoveOp removes one op from an object's sequence.
type RemoveOp struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
}

// ShiftOp reorders an op within its object's sequence.
type ShiftOp struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
	NewIndex int
}

// SetTentativeRotation previews a rotation edit without committing it.
type SetTentativeRotation struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
	Delta    vmath.Quat
}

// CommitRotation folds an op's tentative rotation into its committed one.
type CommitRotation struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
}

// CancelRotation discards an op's tentative rotation.
type CancelRotation struct {
	ObjectId scene.ObjectId
	OpId     scene.PrimitiveOpId
}

func (CreateObject) isEditCommand()         {}
func (RemoveObject) isEditCommand()         {}
func (SetOrigin) isEditCommand()            {}
func (SetName) isEditCommand()              {}
func (PushOp) isEditCommand()               {}
func (UpdateOp) isEditCommand()             {}
func (RemoveOp) isEditCommand()             {}
func (ShiftOp) isEditCommand()              {}
func (SetTentativeRotation) isEditCommand() {}
func (CommitRotation) isEditCommand()       {}
func (CancelRotation) isEditCommand()       {}
