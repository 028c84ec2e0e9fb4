package brc

import "fmt"

// A Range is a half-open [Start, End) view into a Source's bytes. Ranges produced by a
// PartitionMap begin at offset 0 or immediately after a line terminator, and end at the
// end of the input or immediately after a line terminator, so no record straddles two Ranges.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by this Range
func (r Range) Len() int {
	return r.End - r.Start
}

// Of returns the bytes covered by this Range within data
func (r Range) Of(data []byte) []byte {
	return data[r.Start:r.End:r.End]
}

// String returns a string representation of this Range, for logging
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
