package table

import (
	"strings"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/accumulators"
	"golang.org/x/exp/slices"
)

// Finalize converts every entry into a Record, copying names out of the
// borrowed input, and returns them sorted by name (byte-lexicographic)
func Finalize(t *Table) []brc.Record {
	records := make([]brc.Record, 0, t.Len())
	t.Each(func(key []byte, m *accumulators.Measurement) {
		min, avg, max := m.Finalize()
		records = append(records, brc.Record{
			Name:  string(key),
			Min:   min,
			Avg:   avg,
			Max:   max,
			Count: m.Count,
		})
	})
	slices.SortFunc(records, func(a, b brc.Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records
}
