package accumulators

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/fixed"
)

// MaxCount is the largest observation count a serialized Measurement may
// carry. It keeps Count*MaxTenths, and the doubled count used when
// rounding, within an int64.
const MaxCount = math.MaxInt64 / (2 * (fixed.MaxTenths + 1))

// Measurer returns a new, empty Measurement Accumulator
func Measurer() brc.Accumulator {
	return new(Measurement)
}

// Measurement is the running min, max, sum and count of the values observed
// for a single name. All values are in tenths. The zero value is empty and
// becomes valid on its first Add.
type Measurement struct {
	Min   int32
	Max   int32
	Sum   int64
	Count int64
}

// NewMeasurement returns a Measurement holding a single observation
func NewMeasurement(tenths int64) Measurement {
	v := int32(fixed.Clamp(tenths))
	return Measurement{Min: v, Max: v, Sum: int64(v), Count: 1}
}

// Add records a single observation, in tenths, clamped to
// [fixed.MinTenths, fixed.MaxTenths]
func (a *Measurement) Add(tenths int64) {
	tenths = fixed.Clamp(tenths)
	v := int32(tenths)
	if a.Count == 0 {
		a.Min, a.Max = v, v
	} else if v < a.Min {
		a.Min = v
	} else if v > a.Max {
		a.Max = v
	}
	a.Sum += tenths
	a.Count++
}

// MergeMeasurement folds o into this Measurement. o must have been built from
// observations disjoint from this one's.
func (a *Measurement) MergeMeasurement(o *Measurement) {
	if o.Count == 0 {
		return
	}
	if a.Count == 0 {
		*a = *o
		return
	}
	if o.Min < a.Min {
		a.Min = o.Min
	}
	if o.Max > a.Max {
		a.Max = o.Max
	}
	a.Sum += o.Sum
	a.Count += o.Count
}

// Merge merges another Accumulator into this one
func (a *Measurement) Merge(o brc.Accumulator) error {
	ma, ok := o.(*Measurement)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Measurement Accumulator")
	}
	a.MergeMeasurement(ma)
	return nil
}

// Finalize converts this Measurement into display values. The average is
// rounded exactly once, here. Finalize must not be called on an empty Measurement.
func (a *Measurement) Finalize() (min, avg, max fixed.Decimal) {
	return fixed.Decimal(a.Min), fixed.Decimal(fixed.DivRound(a.Sum, a.Count)), fixed.Decimal(a.Max)
}

// AppendBinary appends the serialized form of this Measurement to buf
func (a *Measurement) AppendBinary(buf []byte) []byte {
	buf = binary.AppendVarint(buf, int64(a.Min))
	buf = binary.AppendVarint(buf, int64(a.Max))
	buf = binary.AppendVarint(buf, a.Sum)
	return binary.AppendUvarint(buf, uint64(a.Count))
}

// ReadBinary decodes a Measurement from the front of buf, returning the number of bytes consumed
func (a *Measurement) ReadBinary(buf []byte) (int, error) {
	var fields [3]int64
	off := 0
	for i := range fields {
		v, n := binary.Varint(buf[off:])
		if n <= 0 {
			return 0, fmt.Errorf("Measurement is truncated")
		}
		fields[i] = v
		off += n
	}
	count, n := binary.Uvarint(buf[off:])
	if n <= 0 {
		return 0, fmt.Errorf("Measurement is truncated")
	}
	off += n
	if fields[0] < fixed.MinTenths || fields[1] > fixed.MaxTenths || fields[0] > fields[1] || count == 0 || count > MaxCount {
		return 0, fmt.Errorf("Measurement is out of range: min=%d max=%d count=%d", fields[0], fields[1], count)
	}
	// every observation lies in [min, max], so the sum must too
	if n := int64(count); fields[2] < fields[0]*n || fields[2] > fields[1]*n {
		return 0, fmt.Errorf("Measurement sum %d is inconsistent with min=%d max=%d count=%d", fields[2], fields[0], fields[1], count)
	}
	a.Min = int32(fields[0])
	a.Max = int32(fields[1])
	a.Sum = fields[2]
	a.Count = int64(count)
	return off, nil
}

// ToBytes serializes this Accumulator
func (a *Measurement) ToBytes() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, 24)), nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *Measurement) FromBytes(buf []byte) (brc.Accumulator, error) {
	m := new(Measurement)
	n, err := m.ReadBinary(buf)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, fmt.Errorf("Measurement has %d trailing bytes", len(buf)-n)
	}
	return m, nil
}
