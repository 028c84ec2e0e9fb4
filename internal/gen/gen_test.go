package gen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-sif/brc/fixed"
	"github.com/stretchr/testify/require"
)

func TestWriteIsDeterministic(t *testing.T) {
	var a, b, c bytes.Buffer
	require.Nil(t, Write(&a, Config{Rows: 500, Stations: 50, Seed: 7}))
	require.Nil(t, Write(&b, Config{Rows: 500, Stations: 50, Seed: 7}))
	require.Nil(t, Write(&c, Config{Rows: 500, Stations: 50, Seed: 8}))
	require.Equal(t, a.String(), b.String())
	require.NotEqual(t, a.String(), c.String())
}

func TestWriteShape(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, Config{Rows: 1000, Stations: 60, Seed: 1}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1000)
	known := make(map[string]bool)
	for _, n := range Names(60) {
		known[n] = true
	}
	for _, l := range lines {
		sep := strings.IndexByte(l, ';')
		require.Greater(t, sep, 0, l)
		require.True(t, known[l[:sep]], l)
		v, ok := fixed.Parse([]byte(l[sep+1:]))
		require.True(t, ok, l)
		require.LessOrEqual(t, v, int64(fixed.MaxTenths))
		require.GreaterOrEqual(t, v, int64(fixed.MinTenths))
	}
}

func TestNamesAreDistinct(t *testing.T) {
	names := Names(500)
	seen := make(map[string]bool)
	for _, n := range names {
		require.False(t, seen[n], n)
		seen[n] = true
	}
}

func TestWriteZeroRows(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, Write(&buf, Config{}))
	require.Equal(t, 0, buf.Len())
	require.NotNil(t, Write(&buf, Config{Rows: -1}))
}
