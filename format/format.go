// Package format renders finalized Records, and checks them against a
// previously rendered JSON result.
package format

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-sif/brc"
)

// A Writer renders records, which must already be sorted, to w
type Writer func(w io.Writer, records []brc.Record) error

// Lookup returns the Writer with the given name: "text", "json" or "lines"
func Lookup(name string) (Writer, error) {
	switch name {
	case "text", "":
		return Text, nil
	case "json":
		return JSON, nil
	case "lines":
		return Lines, nil
	default:
		return nil, fmt.Errorf("%q is an unknown output format", name)
	}
}

// appendStats appends "min/avg/max"
func appendStats(buf []byte, r *brc.Record) []byte {
	buf = r.Min.AppendTo(buf)
	buf = append(buf, '/')
	buf = r.Avg.AppendTo(buf)
	buf = append(buf, '/')
	return r.Max.AppendTo(buf)
}

// Stats returns the "min/avg/max" rendering of a record
func Stats(r brc.Record) string {
	return string(appendStats(make([]byte, 0, 20), &r))
}

// Text renders records as {A=1.0/2.0/3.0, B=...} followed by a newline
func Text(w io.Writer, records []brc.Record) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	buf = append(buf, '{')
	for i := range records {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = append(buf, records[i].Name...)
		buf = append(buf, '=')
		buf = appendStats(buf, &records[i])
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	buf = append(buf, "}\n"...)
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// JSON renders records as an object mapping each name to "min/avg/max"
func JSON(w io.Writer, records []brc.Record) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	buf = append(buf, '{')
	for i := range records {
		if i > 0 {
			buf = append(buf, ',')
		}
		name, err := json.Marshal(records[i].Name)
		if err != nil {
			return err
		}
		buf = append(buf, name...)
		buf = append(buf, ": \""...)
		buf = appendStats(buf, &records[i])
		buf = append(buf, '"')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	buf = append(buf, '}')
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// Lines renders one name=min/avg/max line per record
func Lines(w io.Writer, records []brc.Record) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)
	for i := range records {
		buf = append(buf[:0], records[i].Name...)
		buf = append(buf, '=')
		buf = appendStats(buf, &records[i])
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
