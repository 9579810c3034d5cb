package scene

import (
	"slices"

	"github.com/jinzhu/copier"

	"sdf-engine/internal/vmath"
)

// ObjectSnapshot is an immutable, self-contained copy of an object at a
// point in time. It never aliases the live object, so the render thread can
// hold it while the engine keeps mutating.
type ObjectSnapshot struct {
	Id     ObjectId
	Name   string
	Origin vmath.Vec3
	Ops    []PrimitiveOp
}

// Snapshot copies the object's current state.
func (o *Object) Snapshot() ObjectSnapshot {
	snap := ObjectSnapshot{Id: o.id, Name: o.name, Origin: o.origin}
	if err := copier.CopyWithOption(&snap.Ops, &o.ops, copier.Option{DeepCopy: true}); err != nil {
		snap.Ops = slices.Clone(o.ops)
	}
	return snap
}

// AABB returns a conservative world-space bounding box of the snapshot.
func (s ObjectSnapshot) AABB() AABB {
	return opsAABB(s.Origin, s.Ops)
}

// DeltaKind says what happened to an object id within one delta window.
type DeltaKind uint8

const (
	// DeltaAdd: the object did not exist at the start of the window.
	DeltaAdd DeltaKind = iota
	// DeltaUpdate: the object existed and changed.
	DeltaUpdate
	// DeltaRemove: the object was removed; Snapshot is zero.
	DeltaRemove
)

func (k DeltaKind) String() string {
	switch k {
	case DeltaAdd:
		return "add"
	case DeltaUpdate:
		return "update"
	case DeltaRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// DeltaEntry is the net change for one object id.
type DeltaEntry struct {
	Kind     DeltaKind
	Snapshot ObjectSnapshot
}

// ObjectsDelta is the change set bridging the engine and render sides. It
// holds at most one entry per object id: successive mutations within one
// unconsumed window coalesce at record time (add then remove cancels out,
// add then update stays an add with the later snapshot, update then update
// keeps only the later snapshot), so the consumer never observes
// intermediate states.
type ObjectsDelta struct {
	entries map[ObjectId]DeltaEntry
}

// NewObjectsDelta returns an empty change set.
func NewObjectsDelta() *ObjectsDelta {
	return &ObjectsDelta{entries: make(map[ObjectId]DeltaEntry)}
}

// RecordAdd notes that the object was created within this window.
func (d *ObjectsDelta) RecordAdd(snap ObjectSnapshot) {
	if prev, ok := d.entries[snap.Id]; ok && prev.Kind == DeltaRemove {
		// Removed and re-created within one window: the consumer already
		// knows the id, so the net effect is an update.
		d.entries[snap.Id] = DeltaEntry{Kind: DeltaUpdate, Snapshot: snap}
		return
	}
	d.entries[snap.Id] = DeltaEntry{Kind: DeltaAdd, Snapshot: snap}
}

// RecordUpdate notes that the object changed within this window.
func (d *ObjectsDelta) RecordUpdate(snap ObjectSnapshot) {
	kind := DeltaUpdate
	if prev, ok := d.entries[snap.Id]; ok && prev.Kind == DeltaAdd {
		kind = DeltaAdd
	}
	d.entries[snap.Id] = DeltaEntry{Kind: kind, Snapshot: snap}
}

// RecordRemove notes that the object was removed within this window.
func (d *ObjectsDelta) RecordRemove(objectId ObjectId) {
	if prev, ok := d.entries[objectId]; ok && prev.Kind == DeltaAdd {
		// Never existed as far as the consumer is concerned.
		delete(d.entries, objectId)
		return
	}
	d.entries[objectId] = DeltaEntry{Kind: DeltaRemove}
}

// Merge folds other into d, draining it. Folding a sequence of deltas this
// way yields the same net change set as recording every mutation into one
// window.
func (d *ObjectsDelta) Merge(other *ObjectsDelta) {
	for objectId, change := range other.Drain() {
		switch change.Kind {
		case DeltaAdd:
			d.RecordAdd(change.Snapshot)
		case DeltaUpdate:
			d.RecordUpdate(change.Snapshot)
		case DeltaRemove:
			d.RecordRemove(objectId)
		}
	}
}

// Len returns the number of net entries.
func (d *ObjectsDelta) Len() int {
	return len(d.entries)
}

// Empty reports whether the window recorded no net change.
func (d *ObjectsDelta) Empty() bool {
	return len(d.entries) == 0
}

// Drain returns all entries and resets the delta. Each delta is drained
// exactly once, by the render-side consumer.
func (d *ObjectsDelta) Drain() map[ObjectId]DeltaEntry {
	entries := d.entries
	d.entries = make(map[ObjectId]DeltaEntry)
	return entries
}
