package brc

// An Accumulator is a piece of partial state which can be folded together
// with another Accumulator of the same kind. Workers build Accumulators over
// disjoint inputs and the driver merges them, so Merge must be associative and
// commutative: the order in which partial results arrive never changes the
// final result.
type Accumulator interface {
	Merge(o Accumulator) error                 // Merge merges another Accumulator into this one
	ToBytes() ([]byte, error)                  // ToBytes serializes this Accumulator
	FromBytes(buf []byte) (Accumulator, error) // FromBytes produce a new Accumulator from serialized data
}
