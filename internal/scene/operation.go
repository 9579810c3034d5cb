// Package scene holds the engine-side object model: objects made of ordered
// boolean-combined primitive ops, the collection that owns them, and the
// change sets that carry mutations to the render side.
package scene

// Operation selects how a primitive op combines with the accumulated shape of
// all ops before it in the object's sequence.
type Operation uint8

const (
	// OpNop contributes no geometry and starts a fresh disjoint
	// accumulation, so one object can hold independent sub-shapes without a
	// tree structure.
	OpNop Operation = iota
	// OpUnion merges the primitive with the accumulated shape (logical OR).
	OpUnion
	// OpIntersection keeps the overlap only (logical AND).
	OpIntersection
	// OpSubtraction carves the primitive out of the accumulated shape.
	OpSubtraction

	opCount
)

// Valid reports whether op is one of the defined operations.
func (op Operation) Valid() bool {
	return op < opCount
}

// Name returns the operation as displayed in editor UIs.
func (op Operation) Name() string {
	switch op {
	case OpNop:
		return "No-op"
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpSubtraction:
		return "Subtraction"
	default:
		return "Invalid"
	}
}
