// Package fixed implements the one-decimal-digit fixed point numbers used for
// measurements. A Decimal stores a value multiplied by ten, so 12.3 is held as
// 123 and -0.5 as -5. No floating point is involved in parsing, accumulating
// or rounding.
package fixed

import "strconv"

const (
	// MaxTenths is the largest value a measurement may take, in tenths (99.9)
	MaxTenths = 999
	// MinTenths is the smallest value a measurement may take, in tenths (-99.9)
	MinTenths = -999

	// accumulation stops growing past this, which is enough to know a
	// value must be clamped
	saturation = 1 << 20
)

// Decimal is a signed number with exactly one fractional digit, stored in tenths
type Decimal int64

// Clamp restricts a value in tenths to [MinTenths, MaxTenths]
func Clamp(v int64) int64 {
	if v > MaxTenths {
		return MaxTenths
	}
	if v < MinTenths {
		return MinTenths
	}
	return v
}

// Parse decodes a signed decimal with at most one fractional digit, returning
// its value in tenths. Accepted shapes are -?[0-9]+ and -?[0-9]+\.[0-9];
// a value without a fraction is scaled by ten. ok is false for anything else.
// Out-of-range magnitudes are clamped to [MinTenths, MaxTenths].
func Parse(b []byte) (tenths int64, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	negative := b[0] == '-'
	if negative {
		b = b[1:]
	}
	// integer part
	i := 0
	var v int64
	for ; i < len(b) && b[i] != '.'; i++ {
		d := b[i] - '0'
		if d > 9 {
			return 0, false
		}
		if v < saturation {
			v = v*10 + int64(d)
		}
	}
	if i == 0 {
		return 0, false
	}
	switch len(b) - i {
	case 0:
		v *= 10
	case 2:
		d := b[i+1] - '0'
		if d > 9 {
			return 0, false
		}
		v = v*10 + int64(d)
	default:
		// a trailing point, or more than one fractional digit
		return 0, false
	}
	if negative {
		v = -v
	}
	return Clamp(v), true
}

// DivRound divides a sum of tenths by count, rounding half toward positive
// infinity on the tenths scale. count must be positive.
func DivRound(sum, count int64) int64 {
	n := 2*sum + count
	d := 2 * count
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

// AppendTo appends the textual form of d (e.g. "-12.3") to buf
func (d Decimal) AppendTo(buf []byte) []byte {
	v := int64(d)
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	buf = strconv.AppendInt(buf, v/10, 10)
	return append(buf, '.', byte('0'+v%10))
}

// String returns the textual form of d, always with one fractional digit
func (d Decimal) String() string {
	return string(d.AppendTo(make([]byte, 0, 8)))
}

// Tenths returns the raw scaled value
func (d Decimal) Tenths() int64 {
	return int64(d)
}
