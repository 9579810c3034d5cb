package bridge

// RecvStatus is the outcome of a non-blocking receive.
type RecvStatus uint8

const (
	// RecvOk: a value was dequeued.
	RecvOk RecvStatus = iota
	// RecvEmpty: no value this frame; not an error.
	RecvEmpty
	// RecvDisconnected: the sender closed the queue. Clean-shutdown signal,
	// not a fault.
	RecvDisconnected
)

// Queue is an ordered FIFO for discrete events that must not be dropped.
// One sending side, one receiving side. The sender signals shutdown by
// closing; the receiver treats a closed queue as the peer winding down.
type Queue[T any] struct {
	ch chan T
}

// NewQueue returns a queue buffering up to size events.
func NewQueue[T any](size int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, size)}
}

// Send enqueues v, blocking if the buffer is full. Only the owning sender
// may call it, and never after Close.
func (q *Queue[T]) Send(v T) {
	q.ch <- v
}

// TrySend enqueues v unless the buffer is full.
func (q *Queue[T]) TrySend(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryRecv dequeues without blocking. An empty queue means no event this
// frame; a disconnected queue means the sender is gone and the receiver
// should wind down once the already-buffered events are handled (buffered
// events are still delivered, with RecvOk, before RecvDisconnected shows).
func (q *Queue[T]) TryRecv() (T, RecvStatus) {
	select {
	case v, ok := <-q.ch:
		if !ok {
			var zero T
			return zero, RecvDisconnected
		}
		return v, RecvOk
	default:
		var zero T
		return zero, RecvEmpty
	}
}

// Close signals the receiving side that no more events will come. Only the
// sender may close.
func (q *Queue[T]) Close() {
	close(q.ch)
}
