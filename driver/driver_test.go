package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/datasource/file"
	"github.com/go-sif/brc/datasource/memory"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/internal/gen"
	"github.com/go-sif/brc/internal/stats"
)

func run(t *testing.T, input string, opts *brc.Options) []brc.Record {
	res, err := Run(context.Background(), memory.Create("test", []byte(input)), opts, nil, nil)
	require.Nil(t, err)
	return res.Records
}

func summary(records []brc.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = fmt.Sprintf("%s=%s/%s/%s#%d", r.Name, r.Min, r.Avg, r.Max, r.Count)
	}
	return out
}

func TestRunBasic(t *testing.T) {
	defer goleak.VerifyNone(t)
	records := run(t, "A;1.0\nB;2.0\nA;3.0\n", nil)
	require.Equal(t, []string{"A=1.0/2.0/3.0#2", "B=2.0/2.0/2.0#1"}, summary(records))
}

func TestRunNegativeValues(t *testing.T) {
	records := run(t, "A;1.0\nB;-2.5\nA;3.0\n", &brc.Options{NumWorkers: 2, SplitThreshold: 1})
	require.Equal(t, []string{"A=1.0/2.0/3.0#2", "B=-2.5/-2.5/-2.5#1"}, summary(records))
}

func TestRunSingleRecordAtUpperBound(t *testing.T) {
	records := run(t, "A;99.9\n", nil)
	require.Equal(t, []string{"A=99.9/99.9/99.9#1"}, summary(records))
}

func TestRunRounding(t *testing.T) {
	records := run(t, "X;-5.0\nX;5.0\nX;0.1\n", nil)
	require.Equal(t, []string{"X=-5.0/0.0/5.0#3"}, summary(records))
}

func TestRunSkipsMalformed(t *testing.T) {
	records := run(t, "A;1.0\nBADLINE\nA;2.0\n", nil)
	require.Equal(t, []string{"A=1.0/1.5/2.0#2"}, summary(records))
}

func TestRunEmptyInput(t *testing.T) {
	records := run(t, "", &brc.Options{NumWorkers: 4, SplitThreshold: 1})
	require.Len(t, records, 0)
}

func TestRunRangeCountDoesNotMatter(t *testing.T) {
	defer goleak.VerifyNone(t)
	var buf bytes.Buffer
	require.Nil(t, gen.Write(&buf, gen.Config{Rows: 20000, Stations: 300, Seed: 42}))
	input := buf.String()
	expected := summary(run(t, input, &brc.Options{NumWorkers: 1}))
	require.Len(t, expected, 300)
	for _, n := range []int{2, 3, 7, 16, 64} {
		actual := summary(run(t, input, &brc.Options{NumWorkers: n, SplitThreshold: 1, KeyHint: 8}))
		require.Equal(t, expected, actual, "workers=%d", n)
	}
}

func TestRunStatistics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := stats.NewMetrics(reg)
	input := "A;1.0\nB;2.0\nnope\nA;3.0\n"
	res, err := Run(context.Background(), memory.Create("test", []byte(input)), &brc.Options{NumWorkers: 2, SplitThreshold: 1}, log.NewNopLogger(), metrics)
	require.Nil(t, err)
	require.EqualValues(t, 3, res.Stats.GetNumRowsProcessed())
	require.EqualValues(t, 1, res.Stats.GetNumRowsSkipped())
	require.EqualValues(t, len(input), res.Stats.GetNumBytesProcessed())
	require.Equal(t, 2, res.Stats.GetNumKeys())
	require.Len(t, res.Stats.GetRangeRuntimes(), 2)
	require.NotEqual(t, uuid.Nil, res.RunID)
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.RowsProcessed))
	require.Equal(t, float64(2), testutil.ToFloat64(metrics.Keys))
	require.Contains(t, Describe(res.Stats), "3 rows (1 skipped), 2 keys")
}

func TestRunStrict(t *testing.T) {
	defer goleak.VerifyNone(t)
	input := "A;1.0\nBAD\nB;2.0\nC;x\n"
	_, err := Run(context.Background(), memory.Create("test", []byte(input)), &brc.Options{NumWorkers: 2, SplitThreshold: 1, Policy: brc.FailMalformed}, nil, nil)
	require.NotNil(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	var mre errors.MalformedRecordError
	require.ErrorAs(t, merr.Errors[0], &mre)
	require.Equal(t, 6, mre.Offset)
	require.ErrorAs(t, merr.Errors[1], &mre)
	require.Equal(t, 16, mre.Offset)
}

func TestRunInvalidOptions(t *testing.T) {
	_, err := Run(context.Background(), memory.Create("test", nil), &brc.Options{NumWorkers: -1}, nil, nil)
	require.NotNil(t, err)
	_, err = Run(context.Background(), memory.Create("test", nil), &brc.Options{Policy: "maybe"}, nil, nil)
	require.NotNil(t, err)
}

func TestRunDoesNotModifyOptions(t *testing.T) {
	opts := &brc.Options{}
	run(t, "A;1.0\n", opts)
	require.Equal(t, brc.Options{}, *opts)
}

func TestRunCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, memory.Create("test", []byte("A;1.0\n")), nil, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunFile(t *testing.T) {
	defer goleak.VerifyNone(t)
	path := filepath.Join(t.TempDir(), "measurements.txt")
	f, err := os.Create(path)
	require.Nil(t, err)
	require.Nil(t, gen.Write(f, gen.Config{Rows: 5000, Stations: 40, Seed: 3}))
	require.Nil(t, f.Close())

	src, err := file.Open(path)
	require.Nil(t, err)
	res, err := Run(context.Background(), src, &brc.Options{NumWorkers: 4, SplitThreshold: 1}, nil, nil)
	require.Nil(t, err)
	require.Nil(t, src.Close())
	// records are copied out of the mapping, so they survive Close
	require.Len(t, res.Records, 40)
	var total int64
	for _, r := range res.Records {
		total += r.Count
		require.LessOrEqual(t, r.Min.Tenths(), r.Avg.Tenths())
		require.LessOrEqual(t, r.Avg.Tenths(), r.Max.Tenths())
	}
	require.EqualValues(t, 5000, total)
}

func BenchmarkRun(b *testing.B) {
	var buf bytes.Buffer
	require.Nil(b, gen.Write(&buf, gen.Config{Rows: 1_000_000, Stations: 413, Seed: 1}))
	src := memory.Create("bench", buf.Bytes())
	b.SetBytes(int64(buf.Len()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), src, &brc.Options{SplitThreshold: 1}, nil, nil); err != nil {
			b.Fatal(err)
		}
	}
}
