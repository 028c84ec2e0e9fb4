package partition

import (
	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
)

// rangeMap is a PartitionMap over a precomputed list of Ranges
type rangeMap struct {
	ranges []brc.Range
	next   int
}

// CreatePartitionMap splits data and returns a PartitionMap over the resulting Ranges
func CreatePartitionMap(data []byte, numWorkers int, splitThreshold int) brc.PartitionMap {
	return &rangeMap{ranges: Split(data, numWorkers, splitThreshold)}
}

// HasNext returns true iff there is another Range remaining
func (m *rangeMap) HasNext() bool {
	return m.next < len(m.ranges)
}

// Next returns the next Range. It panics with a NoMoreRangesError if there is none
func (m *rangeMap) Next() brc.Range {
	if !m.HasNext() {
		panic(errors.NoMoreRangesError{})
	}
	r := m.ranges[m.next]
	m.next++
	return r
}

// Len returns the total number of Ranges in this PartitionMap
func (m *rangeMap) Len() int {
	return len(m.ranges)
}
