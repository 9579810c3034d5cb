package id

import (
	"fmt"
	"math"
	"slices"
)

// UniqueId identifies an entity within one Generator's scope. Ids are unique
// among currently-live ids only; a fully removed id may be reissued later.
type UniqueId uint32

// Invalid is never issued by a Generator. Use it as the "no id" value.
const Invalid UniqueId = 0

// max is the last value a Generator can issue before it is exhausted.
const max = math.MaxUint32

// ErrExhausted is returned by NewId once the counter would wrap. The
// generator is permanently out of fresh ids; only recycled ids remain usable.
var ErrExhausted = fmt.Errorf("unique id generator exhausted (counter reached %d)", uint32(max))

// AlreadyRecycledError is returned by RecycleId when the id is already in the
// recycle pool, which indicates a double-remove somewhere upstream.
type AlreadyRecycledError struct {
	Id UniqueId
}

func (e AlreadyRecycledError) Error() string {
	return fmt.Sprintf("id %d is already pending recycle", e.Id)
}

// Generator issues unique ids starting from 1 and reuses recycled ids
// smallest-first before advancing the counter. The zero value is not usable;
// call NewGenerator.
//
// Generators are not safe for concurrent use. Each one is owned by a single
// goroutine (the engine thread) along with the collection it serves.
type Generator struct {
	counter  UniqueId
	recycled []UniqueId // sorted ascending, no duplicates
}

// NewGenerator returns a generator whose first issued id is 1.
func NewGenerator() *Generator {
	return &Generator{counter: 1}
}

// NewId returns the smallest recycled id if any are pending, otherwise the
// next never-issued value. Returns ErrExhausted when the counter would wrap;
// the reserved Invalid (0) value is never returned.
func (g *Generator) NewId() (UniqueId, error) {
	if len(g.recycled) > 0 {
		id := g.recycled[0]
		g.recycled = g.recycled[1:]
		return id, nil
	}
	if g.counter == max {
		return Invalid, ErrExhausted
	}
	id := g.counter
	g.counter++
	return id, nil
}

// RecycleId returns an id to the pool for reuse. The caller must guarantee
// nothing references the id anymore. Recycling an id that is already pending
// returns AlreadyRecycledError.
func (g *Generator) RecycleId(id UniqueId) error {
	i, found := slices.BinarySearch(g.recycled, id)
	if found {
		return AlreadyRecycledError{Id: id}
	}
	g.recycled = slices.Insert(g.recycled, i, id)
	return nil
}

// PendingRecycled reports how many ids are waiting for reuse.
func (g *Generator) PendingRecycled() int {
	return len(g.recycled)
}
