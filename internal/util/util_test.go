package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/internal/scan"
	"github.com/go-sif/brc/internal/table"
	"github.com/stretchr/testify/require"
)

func TestSafeScanOperationPassesThrough(t *testing.T) {
	data := []byte("A;1.0\n")
	tbl := table.New(4)
	counts, err := SafeScanOperation(scan.CreateScanner(brc.SkipMalformed).Scan)(data, brc.Range{Start: 0, End: len(data)}, tbl)
	require.Nil(t, err)
	require.EqualValues(t, 1, counts.Rows)
	require.Equal(t, 1, tbl.Len())
}

func TestSafeScanOperationWrapsErrors(t *testing.T) {
	data := []byte("bad\n")
	_, err := SafeScanOperation(scan.CreateScanner(brc.FailMalformed).Scan)(data, brc.Range{Start: 0, End: len(data)}, table.New(4))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Scan Error")
	require.Contains(t, err.Error(), "[0, 4)")
	var merr errors.MalformedRecordError
	require.ErrorAs(t, err, &merr)
	require.Equal(t, "bad", merr.Line)
}

func TestSafeScanOperationRecoversPanics(t *testing.T) {
	panicky := func(data []byte, r brc.Range, tbl *table.Table) (scan.Counts, error) {
		panic(fmt.Errorf("boom"))
	}
	_, err := SafeScanOperation(panicky)(nil, brc.Range{Start: 3, End: 9}, nil)
	require.NotNil(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "Scan Panic: boom"))
	require.Contains(t, err.Error(), "[3, 9)")

	_, err = SafeScanOperation(func(data []byte, r brc.Range, tbl *table.Table) (scan.Counts, error) {
		panic("not an error")
	})(nil, brc.Range{}, nil)
	require.Contains(t, err.Error(), "not an error")
}

func TestFormatMultiError(t *testing.T) {
	msg := FormatMultiError([]error{fmt.Errorf("one"), fmt.Errorf("two")})
	require.Equal(t, "one\ntwo\n", msg)
}
