package format

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/gjson"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
)

// Verify compares records against expected, a JSON object of the shape
// written by JSON. Every differing, missing or unexpected name produces a
// MismatchError; an empty string stands for an absent side.
func Verify(expected []byte, records []brc.Record) error {
	if !gjson.ValidBytes(expected) {
		return fmt.Errorf("expected result is not valid JSON")
	}
	parsed := gjson.ParseBytes(expected)
	if !parsed.IsObject() {
		return fmt.Errorf("expected result is not a JSON object")
	}
	want := make(map[string]string)
	parsed.ForEach(func(key, value gjson.Result) bool {
		want[key.String()] = value.String()
		return true
	})

	var errs *multierror.Error
	for _, r := range records {
		actual := Stats(r)
		exp, ok := want[r.Name]
		if !ok || exp != actual {
			errs = multierror.Append(errs, errors.MismatchError{Name: r.Name, Expected: exp, Actual: actual})
		}
		delete(want, r.Name)
	}
	// ForEach preserves document order, so report leftovers in that order
	parsed.ForEach(func(key, value gjson.Result) bool {
		if _, ok := want[key.String()]; ok {
			errs = multierror.Append(errs, errors.MismatchError{Name: key.String(), Expected: value.String()})
			delete(want, key.String())
		}
		return true
	})
	return errs.ErrorOrNil()
}
