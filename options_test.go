package brc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultOptions(t *testing.T) {
	opts := &Options{}
	require.Nil(t, EnsureDefaultOptions(opts))
	require.Equal(t, runtime.NumCPU(), opts.NumWorkers)
	require.Equal(t, DefaultKeyHint, opts.KeyHint)
	require.Equal(t, DefaultSplitThreshold, opts.SplitThreshold)
	require.Equal(t, SkipMalformed, opts.Policy)

	opts = &Options{NumWorkers: 3, KeyHint: 7, SplitThreshold: 1, Policy: FailMalformed}
	require.Nil(t, EnsureDefaultOptions(opts))
	require.Equal(t, Options{NumWorkers: 3, KeyHint: 7, SplitThreshold: 1, Policy: FailMalformed}, *opts)
}

func TestEnsureDefaultOptionsRejects(t *testing.T) {
	require.NotNil(t, EnsureDefaultOptions(&Options{NumWorkers: -2}))
	require.NotNil(t, EnsureDefaultOptions(&Options{Policy: "ignore"}))
}

func TestCloneOptions(t *testing.T) {
	opts := &Options{NumWorkers: 2, Policy: FailMalformed}
	clone := CloneOptions(opts)
	clone.NumWorkers = 9
	require.Equal(t, 2, opts.NumWorkers)
	require.Equal(t, FailMalformed, clone.Policy)
}

func TestRange(t *testing.T) {
	data := []byte("A;1.0\nB;2.0\n")
	r := Range{Start: 6, End: 12}
	require.Equal(t, 6, r.Len())
	require.Equal(t, "B;2.0\n", string(r.Of(data)))
	require.Equal(t, "[6, 12)", r.String())
	// the view cannot be appended into the bytes which follow it
	head := Range{Start: 0, End: 6}.Of(data)
	require.Equal(t, 6, cap(head))
}
