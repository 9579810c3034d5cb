package scene

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"sdf-engine/internal/id"
	"sdf-engine/internal/vmath"
)

// ObjectNotFoundError is returned for an ObjectId that is not in the
// collection, e.g. a UI action racing an object removal. Recoverable:
// callers log and no-op.
type ObjectNotFoundError struct {
	Id ObjectId
}

func (e ObjectNotFoundError) Error() string {
	return fmt.Sprintf("no object with id %d", e.Id)
}

// ObjectCollection owns every object in the scene and allocates their ids.
// All mutations also record entries into the pending ObjectsDelta, which the
// engine ships to the render side once per tick via DrainDelta.
//
// Owned exclusively by the engine goroutine; never shared.
type ObjectCollection struct {
	gen     *id.Generator
	objects map[ObjectId]*Object
	pending *ObjectsDelta
	log     *zap.Logger
}

// NewObjectCollection returns an empty collection.
func NewObjectCollection(log *zap.Logger) *ObjectCollection {
	return &ObjectCollection{
		gen:     id.NewGenerator(),
		objects: make(map[ObjectId]*Object),
		pending: NewObjectsDelta(),
		log:     log,
	}
}

// NewObject allocates an id and inserts an object seeded with the given base
// primitive op (base.Id is ignored; the object assigns its own op ids).
func (c *ObjectCollection) NewObject(name string, origin vmath.Vec3, base PrimitiveOp) (ObjectId, error) {
	objectId, err := c.gen.NewId()
	if err != nil {
		return ObjectId(id.Invalid), fmt.Errorf("allocating object id: %w", err)
	}
	object, err := newObject(ObjectId(objectId), name, origin, base)
	if err != nil {
		// The object never existed; its id must not leak.
		if recycleErr := c.gen.RecycleId(objectId); recycleErr != nil {
			c.log.Error("recycling id of stillborn object failed", zap.Error(recycleErr))
		}
		return ObjectId(id.Invalid), err
	}
	c.objects[object.id] = object
	c.pending.RecordAdd(object.Snapshot())
	c.log.Debug("object created",
		zap.Uint32("id", uint32(object.id)), zap.String("name", name))
	return object.id, nil
}

// Get returns the live object. The pointer must not be cached across frames;
// re-validate by id instead.
func (c *ObjectCollection) Get(objectId ObjectId) (*Object, error) {
	object, ok := c.objects[objectId]
	if !ok {
		return nil, ObjectNotFoundError{Id: objectId}
	}
	return object, nil
}

// RemoveObject removes the object, recycles its id and records the removal.
// All the object's PrimitiveOpIds become invalid; other objects are
// unaffected. The caller owning the primitive registry should sweep it
// afterwards.
func (c *ObjectCollection) RemoveObject(objectId ObjectId) error {
	object, ok := c.objects[objectId]
	if !ok {
		return ObjectNotFoundError{Id: objectId}
	}
	delete(c.objects, objectId)
	if err := c.gen.RecycleId(id.UniqueId(objectId)); err != nil {
		return fmt.Errorf("recycling object id: %w", err)
	}
	c.pending.RecordRemove(objectId)
	c.log.Debug("object removed",
		zap.Uint32("id", uint32(objectId)), zap.String("name", object.name))
	return nil
}

// MarkUpdated snapshots the object into the pending delta. Call after any
// mutation of the object's state.
func (c *ObjectCollection) MarkUpdated(objectId ObjectId) error {
	object, ok := c.objects[objectId]
	if !ok {
		return ObjectNotFoundError{Id: objectId}
	}
	c.pending.RecordUpdate(object.Snapshot())
	return nil
}

// Ids returns all object ids in ascending order.
func (c *ObjectCollection) Ids() []ObjectId {
	ids := make([]ObjectId, 0, len(c.objects))
	for objectId := range c.objects {
		ids = append(ids, objectId)
	}
	slices.Sort(ids)
	return ids
}

// Objects returns the live objects in ascending id order, the collection's
// deterministic iteration order.
func (c *ObjectCollection) Objects() []*Object {
	ids := c.Ids()
	objects := make([]*Object, len(ids))
	for i, objectId := range ids {
		objects[i] = c.objects[objectId]
	}
	return objects
}

// Len returns the number of live objects.
func (c *ObjectCollection) Len() int {
	return len(c.objects)
}

// DrainDelta hands off the pending change set for transport and starts a new
// window. Returns nil when nothing changed.
func (c *ObjectCollection) DrainDelta() *ObjectsDelta {
	if c.pending.Empty() {
		return nil
	}
	delta := c.pending
	c.pending = NewObjectsDelta()
	return delta
}
