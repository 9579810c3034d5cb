package gpu

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"sdf-engine/internal/scene"
	"sdf-engine/internal/vmath"
)

// MaxEncodableOps caps the total primitive op slots so every word in the
// stream stays addressable with a 32-bit index.
const MaxEncodableOps = math.MaxUint32 / PacketWords

// OverflowError is returned when a scene no longer fits the encodable or
// configured op capacity. Never silently truncated.
type OverflowError struct {
	Ops   int
	Limit int
}

func (e OverflowError) Error() string {
	return fmt.Sprintf("%d primitive ops exceed the encodable limit of %d", e.Ops, e.Limit)
}

// EncodeObject encodes a snapshot into one packet per primitive op, in
// evaluation order.
func EncodeObject(snap scene.ObjectSnapshot) ([]Packet, error) {
	return encodeOps(snap, MaxEncodableOps)
}

func encodeOps(snap scene.ObjectSnapshot, limit int) ([]Packet, error) {
	if len(snap.Ops) > limit {
		return nil, OverflowError{Ops: len(snap.Ops), Limit: limit}
	}
	packets := make([]Packet, len(snap.Ops))
	for i, op := range snap.Ops {
		packets[i] = CreatePrimitiveOpPacket(op, snap.Origin)
	}
	return packets, nil
}

type objectEntry struct {
	name    string
	packets []Packet
	aabb    scene.AABB
}

// ObjectBuffers is the render side's encoded mirror of the scene: per-object
// packet runs plus bounding boxes for picking. Deltas re-encode only the
// objects they mention.
//
// Owned exclusively by the render goroutine.
type ObjectBuffers struct {
	entries map[scene.ObjectId]*objectEntry
	// encodeLimit caps ops per object; MaxEncodableOps outside tests.
	encodeLimit int
	log         *zap.Logger
}

// NewObjectBuffers returns an empty mirror.
func NewObjectBuffers(log *zap.Logger) *ObjectBuffers {
	return &ObjectBuffers{
		entries:     make(map[scene.ObjectId]*objectEntry),
		encodeLimit: MaxEncodableOps,
		log:         log,
	}
}

// ApplyDelta drains the delta and re-encodes the mentioned objects. All
// snapshots are encoded before the mirror is touched, so one oversized
// object fails the whole delta without half-applying it. A remove for an id
// that is not mirrored is logged and skipped; the engine may have coalesced
// its add away while this side was busy.
func (b *ObjectBuffers) ApplyDelta(delta *scene.ObjectsDelta) error {
	changes := delta.Drain()

	encoded := make(map[scene.ObjectId]*objectEntry, len(changes))
	for objectId, change := range changes {
		if change.Kind == scene.DeltaRemove {
			continue
		}
		packets, err := encodeOps(change.Snapshot, b.encodeLimit)
		if err != nil {
			return fmt.Errorf("encoding object %d: %w", objectId, err)
		}
		encoded[objectId] = &objectEntry{
			name:    change.Snapshot.Name,
			packets: packets,
			aabb:    change.Snapshot.AABB(),
		}
	}

	for objectId, change := range changes {
		if change.Kind == scene.DeltaRemove {
			if _, ok := b.entries[objectId]; !ok {
				b.log.Warn("remove for object not mirrored",
					zap.Uint32("id", uint32(objectId)))
				continue
			}
			delete(b.entries, objectId)
			continue
		}
		b.entries[objectId] = encoded[objectId]
	}
	return nil
}

// ObjectCount returns the number of mirrored objects.
func (b *ObjectBuffers) ObjectCount() int {
	return len(b.entries)
}

// OpCount returns the total primitive op slots currently mirrored.
func (b *ObjectBuffers) OpCount() int {
	total := 0
	for _, e := range b.entries {
		total += len(e.packets)
	}
	return total
}

// ids returns mirrored object ids ascending, the deterministic stream order.
func (b *ObjectBuffers) ids() []scene.ObjectId {
	ids := make([]scene.ObjectId, 0, len(b.entries))
	for objectId := range b.entries {
		ids = append(ids, objectId)
	}
	slices.Sort(ids)
	return ids
}

// Flatten lays every object's packets out back to back in ascending object
// id order and pads the remaining slots with NOP packets. The result always
// holds exactly maxOps packets; a scene that does not fit fails with
// OverflowError.
func (b *ObjectBuffers) Flatten(maxOps int) ([]uint32, error) {
	if maxOps > MaxEncodableOps {
		maxOps = MaxEncodableOps
	}
	if total := b.OpCount(); total > maxOps {
		return nil, OverflowError{Ops: total, Limit: maxOps}
	}
	words := make([]uint32, 0, maxOps*PacketWords)
	for _, objectId := range b.ids() {
		for _, p := range b.entries[objectId].packets {
			words = append(words, p[:]...)
		}
	}
	pad := NopPrimitiveOpPacket()
	for len(words) < maxOps*PacketWords {
		words = append(words, pad[:]...)
	}
	return words, nil
}

// PickAABB returns the nearest mirrored object whose bounding box the ray
// hits, for render-side pick queries.
func (b *ObjectBuffers) PickAABB(origin, dir vmath.Vec3) (scene.ObjectId, bool) {
	bestId := scene.ObjectId(0)
	bestT := float32(math.MaxFloat32)
	found := false
	for _, objectId := range b.ids() {
		t, hit := b.entries[objectId].aabb.RayHit(origin, dir)
		if hit && t < bestT {
			bestId, bestT, found = objectId, t, true
		}
	}
	return bestId, found
}
