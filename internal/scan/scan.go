// Package scan turns a Range of "name;value" lines into table observations.
//
// Delimiters are located with bytes.IndexByte, which the Go runtime implements
// with vector instructions on the common architectures, so the scan proceeds
// in wide blocks and only falls back to single bytes at the tail of a block.
package scan

import (
	"bytes"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/fixed"
	"github.com/go-sif/brc/internal/table"
)

const (
	// Delimiter separates a name from its value
	Delimiter = ';'
	// Terminator ends a record
	Terminator = '\n'
)

// Counts describes what a scan saw
type Counts struct {
	Rows    int64 // records aggregated into the table
	Skipped int64 // malformed records which were dropped
	Bytes   int64 // bytes scanned
}

// Add folds o into these Counts
func (c *Counts) Add(o Counts) {
	c.Rows += o.Rows
	c.Skipped += o.Skipped
	c.Bytes += o.Bytes
}

// Scanner scans Ranges of a shared input
type Scanner struct {
	policy brc.MalformedPolicy
}

// CreateScanner returns a new Scanner applying the given MalformedPolicy.
// An empty policy means brc.SkipMalformed.
func CreateScanner(policy brc.MalformedPolicy) *Scanner {
	if policy == "" {
		policy = brc.SkipMalformed
	}
	return &Scanner{policy: policy}
}

// Scan feeds every record in data[r.Start:r.End] into tbl, in order. The end
// of the Range acts as a terminator for a final line without one. Blank lines
// are ignored and a '\r' before the terminator is tolerated. A record without
// a delimiter, with an empty name, or with an undecodable value is malformed:
// under brc.SkipMalformed it is counted and dropped, under brc.FailMalformed
// the scan stops and returns a MalformedRecordError. Names are stored in tbl as
// slices of data, so data must outlive tbl.
func (s *Scanner) Scan(data []byte, r brc.Range, tbl *table.Table) (Counts, error) {
	buf := r.Of(data)
	counts := Counts{Bytes: int64(len(buf))}
	for off := 0; off < len(buf); {
		line := buf[off:]
		next := len(buf)
		if nl := bytes.IndexByte(line, Terminator); nl >= 0 {
			line = line[:nl]
			next = off + nl + 1
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if len(line) == 0 {
			off = next
			continue
		}
		sep := bytes.IndexByte(line, Delimiter)
		var tenths int64
		ok := sep > 0
		if ok {
			tenths, ok = fixed.Parse(line[sep+1:])
		}
		if !ok {
			if s.policy == brc.FailMalformed {
				return counts, errors.MalformedRecordError{Offset: r.Start + off, Line: string(line)}
			}
			counts.Skipped++
			off = next
			continue
		}
		tbl.Upsert(line[:sep], tenths)
		counts.Rows++
		off = next
	}
	return counts, nil
}
