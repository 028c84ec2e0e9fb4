package brc

import (
	"fmt"
	"runtime"
)

// MalformedPolicy describes what happens to a record which cannot be decoded
type MalformedPolicy = string

const (
	// SkipMalformed drops malformed records silently, counting them in the run statistics
	SkipMalformed MalformedPolicy = "skip"
	// FailMalformed aborts the run, reporting the first malformed record found in each Range
	FailMalformed MalformedPolicy = "fail"
)

const (
	// DefaultKeyHint is the expected number of distinct names when none is supplied
	DefaultKeyHint = 10000
	// DefaultSplitThreshold is the input size below which a single Range is used
	DefaultSplitThreshold = 1 << 20
)

// Options configure a run of the driver
type Options struct {
	NumWorkers     int             // the number of Ranges scanned in parallel. Defaults to runtime.NumCPU()
	KeyHint        int             // the expected number of distinct names, used to pre-size tables. Defaults to DefaultKeyHint
	SplitThreshold int             // inputs smaller than this many bytes are scanned as a single Range. Defaults to DefaultSplitThreshold
	Policy         MalformedPolicy // what to do with malformed records. Defaults to SkipMalformed
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NumWorkers:     opts.NumWorkers,
		KeyHint:        opts.KeyHint,
		SplitThreshold: opts.SplitThreshold,
		Policy:         opts.Policy,
	}
}

// EnsureDefaultOptions fills in defaults for unset Options, and rejects invalid ones
func EnsureDefaultOptions(opts *Options) error {
	if opts.NumWorkers < 0 {
		return fmt.Errorf("Options.NumWorkers must not be negative, was %d", opts.NumWorkers)
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if opts.KeyHint <= 0 {
		opts.KeyHint = DefaultKeyHint
	}
	if opts.SplitThreshold <= 0 {
		opts.SplitThreshold = DefaultSplitThreshold
	}
	switch opts.Policy {
	case "":
		opts.Policy = SkipMalformed
	case SkipMalformed, FailMalformed:
	default:
		return fmt.Errorf("%s is an unknown MalformedPolicy", opts.Policy)
	}
	return nil
}
