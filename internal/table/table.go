// Package table provides the per-worker aggregate table: an open-addressing
// hash table keyed by the content of borrowed byte slices. Keys are never
// copied while scanning; they reference the input buffer, which must outlive
// the table. NOT THREAD SAFE: a table is owned by one worker at a time.
package table

import (
	"bytes"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-sif/brc"
	"github.com/go-sif/brc/accumulators"
)

const minCapacity = 16

type entry struct {
	hash     uint64
	key      []byte
	occupied bool
	m        accumulators.Measurement
}

// Table maps names to their running Measurements
type Table struct {
	entries []entry
	mask    uint64
	size    int
	growAt  int
	// keeps buffers alive whose bytes are referenced by keys, when the
	// keys do not come from a Source
	backing [][]byte
}

// New creates a Table sized to hold hint distinct names without growing
func New(hint int) *Table {
	t := &Table{}
	t.alloc(capacityFor(hint))
	return t
}

// capacityFor returns a power of two large enough to hold n keys at half load
func capacityFor(n int) int {
	c := minCapacity
	for c < 2*n {
		c <<= 1
	}
	return c
}

func (t *Table) alloc(capacity int) {
	t.entries = make([]entry, capacity)
	t.mask = uint64(capacity - 1)
	t.size = 0
	t.growAt = capacity / 2
}

// Len returns the number of distinct names in this Table
func (t *Table) Len() int {
	return t.size
}

// Capacity returns the number of slots in this Table
func (t *Table) Capacity() int {
	return len(t.entries)
}

// find returns the slot holding key, or the empty slot where it belongs
func (t *Table) find(key []byte, hash uint64) *entry {
	for i := hash & t.mask; ; i = (i + 1) & t.mask {
		e := &t.entries[i]
		if !e.occupied || (e.hash == hash && bytes.Equal(e.key, key)) {
			return e
		}
	}
}

// Upsert records an observation, in tenths, for key. key is retained, not copied.
func (t *Table) Upsert(key []byte, tenths int64) {
	hash := xxhash.Sum64(key)
	e := t.find(key, hash)
	if e.occupied {
		e.m.Add(tenths)
		return
	}
	e.occupied = true
	e.hash = hash
	e.key = key
	e.m = accumulators.NewMeasurement(tenths)
	t.inserted()
}

// UpsertAccumulator merges a whole Accumulator, which must be a Measurement,
// into the entry for key
func (t *Table) UpsertAccumulator(key []byte, acc brc.Accumulator) error {
	hash := xxhash.Sum64(key)
	e := t.find(key, hash)
	if e.occupied {
		return e.m.Merge(acc)
	}
	var m accumulators.Measurement
	if err := m.Merge(acc); err != nil {
		return err
	}
	if m.Count == 0 {
		return nil
	}
	e.occupied = true
	e.hash = hash
	e.key = key
	e.m = m
	t.inserted()
	return nil
}

// upsertMeasurement merges m into the entry for key, inserting if necessary
func (t *Table) upsertMeasurement(key []byte, hash uint64, m *accumulators.Measurement) {
	e := t.find(key, hash)
	if e.occupied {
		e.m.MergeMeasurement(m)
		return
	}
	e.occupied = true
	e.hash = hash
	e.key = key
	e.m = *m
	t.inserted()
}

func (t *Table) inserted() {
	t.size++
	if t.size > t.growAt {
		t.grow()
	}
}

func (t *Table) grow() {
	old := t.entries
	size := t.size
	t.alloc(len(old) * 2)
	for i := range old {
		if !old[i].occupied {
			continue
		}
		e := t.find(old[i].key, old[i].hash)
		*e = old[i]
	}
	t.size = size
}

// Get returns the Measurement for key, if present
func (t *Table) Get(key []byte) (*accumulators.Measurement, bool) {
	e := t.find(key, xxhash.Sum64(key))
	if !e.occupied {
		return nil, false
	}
	return &e.m, true
}

// Merge folds every entry of o into this Table. Measurements for names present in
// both are merged; the rest are moved in. o must not be used afterwards.
func (t *Table) Merge(o *Table) {
	if o == nil || o == t {
		return
	}
	for i := range o.entries {
		e := &o.entries[i]
		if e.occupied {
			t.upsertMeasurement(e.key, e.hash, &e.m)
		}
	}
	t.backing = append(t.backing, o.backing...)
	o.entries = nil
	o.backing = nil
	o.size = 0
}

// Each calls fn for every name in this Table, in no particular order.
// key is borrowed and must not be retained beyond the lifetime of the input.
func (t *Table) Each(fn func(key []byte, m *accumulators.Measurement)) {
	for i := range t.entries {
		if t.entries[i].occupied {
			fn(t.entries[i].key, &t.entries[i].m)
		}
	}
}

// Retain keeps buf alive for as long as this Table, for keys which reference it
func (t *Table) Retain(buf []byte) {
	t.backing = append(t.backing, buf)
}
