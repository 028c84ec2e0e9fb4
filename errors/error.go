package errors

import (
	"fmt"
)

// SourceError occurs when an input cannot be opened, read or mapped. It is fatal: no Range is scanned.
type SourceError struct {
	Path string
	Op   string
	Err  error
}

// Error returns a textual representation of this SourceError
func (e SourceError) Error() string {
	return fmt.Sprintf("Unable to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause of this SourceError
func (e SourceError) Unwrap() error {
	return e.Err
}

// MalformedRecordError occurs when a record cannot be decoded and malformed records are not being skipped
type MalformedRecordError struct {
	Offset int    // absolute byte offset of the start of the record
	Line   string // the offending record, without its line terminator
}

// Error returns a textual representation of this MalformedRecordError
func (e MalformedRecordError) Error() string {
	return fmt.Sprintf("Malformed record at byte %d: %q", e.Offset, e.Line)
}

// NoMoreRangesError occurs when there are no more Ranges in a PartitionMap
type NoMoreRangesError struct{}

// Error returns a textual representation of this NoMoreRangesError
func (e NoMoreRangesError) Error() string {
	return "No more ranges"
}

// SnapshotError occurs when a snapshot cannot be decoded
type SnapshotError struct{ Reason string }

// Error returns a textual representation of this SnapshotError
func (e SnapshotError) Error() string {
	return fmt.Sprintf("Invalid snapshot: %s", e.Reason)
}

// MismatchError occurs when a result differs from an expected result
type MismatchError struct {
	Name     string
	Expected string
	Actual   string
}

// Error returns a textual representation of this MismatchError
func (e MismatchError) Error() string {
	return fmt.Sprintf("Result for %q was %q, expected %q", e.Name, e.Actual, e.Expected)
}
