// Package bridge is the one-way transport between the engine goroutine and
// the render loop. Continuously-updated state travels through single-slot
// latest-value cells where stale values are dropped on purpose; discrete
// events that must not be dropped travel through FIFO queues. Neither side
// ever blocks on the per-frame path.
package bridge

import (
	"sync/atomic"
)

// Cell is a single-slot "latest value wins" channel. Writers overwrite
// whatever is in the slot; intermediate values are intentionally lost since
// only the newest matters. Safe for one writer and one reader.
type Cell[T any] struct {
	slot atomic.Pointer[T]
}

// Put replaces the slot's value.
func (c *Cell[T]) Put(v T) {
	c.slot.Store(&v)
}

// Take observes and clears: it returns the latest value and empties the
// slot, so each published value is consumed at most once.
func (c *Cell[T]) Take() (T, bool) {
	p := c.slot.Swap(nil)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Peek returns the latest value without clearing the slot.
func (c *Cell[T]) Peek() (T, bool) {
	p := c.slot.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
