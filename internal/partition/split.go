package partition

import (
	"bytes"

	"github.com/go-sif/brc"
)

// Split divides data into numWorkers contiguous, line-aligned Ranges whose
// union is [0, len(data)). Boundaries start at evenly spaced offsets and are
// snapped forward past the next line terminator, so a Range may be empty when
// a single line is longer than the spacing. The last Range absorbs everything
// up to len(data). Inputs shorter than splitThreshold produce a single Range.
// The result depends only on data and the two parameters.
func Split(data []byte, numWorkers int, splitThreshold int) []brc.Range {
	total := len(data)
	if numWorkers < 1 {
		numWorkers = 1
	}
	if total < splitThreshold || numWorkers == 1 {
		return []brc.Range{{Start: 0, End: total}}
	}
	ranges := make([]brc.Range, numWorkers)
	start := 0
	for i := 0; i < numWorkers-1; i++ {
		target := int(int64(total) * int64(i+1) / int64(numWorkers))
		if target < start {
			target = start
		}
		end := snapForward(data, target)
		ranges[i] = brc.Range{Start: start, End: end}
		start = end
	}
	ranges[numWorkers-1] = brc.Range{Start: start, End: total}
	return ranges
}

// snapForward returns the smallest offset >= target which is 0, len(data), or
// immediately after a line terminator
func snapForward(data []byte, target int) int {
	if target <= 0 {
		return 0
	}
	if target >= len(data) {
		return len(data)
	}
	nl := bytes.IndexByte(data[target-1:], '\n')
	if nl < 0 {
		return len(data)
	}
	return target + nl
}
