package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	rs := CreateRunStatistics(nil)
	require.Equal(t, time.Duration(0), rs.GetRuntime())
	rs.Start(4)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rs.EndRange(idx, time.Now().Add(-time.Millisecond), 10, 1, 100)
		}(i)
	}
	wg.Wait()
	rs.Finish()
	require.EqualValues(t, 40, rs.GetNumRowsProcessed())
	require.EqualValues(t, 4, rs.GetNumRowsSkipped())
	require.EqualValues(t, 400, rs.GetNumBytesProcessed())
	runtimes := rs.GetRangeRuntimes()
	require.Len(t, runtimes, 4)
	for _, d := range runtimes {
		require.GreaterOrEqual(t, d, time.Millisecond)
	}
	// the runtime is frozen once finished
	require.Equal(t, rs.GetRuntime(), rs.GetRuntime())
	require.False(t, rs.GetStartTime().IsZero())
}

func TestStartIsIdempotent(t *testing.T) {
	rs := CreateRunStatistics(nil)
	rs.Start(2)
	first := rs.GetStartTime()
	rs.Start(5)
	require.Equal(t, first, rs.GetStartTime())
	require.Len(t, rs.GetRangeRuntimes(), 2)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	rs := CreateRunStatistics(m)
	rs.Start(2)
	rs.EndRange(0, time.Now(), 7, 2, 64)
	rs.EndRange(1, time.Now(), 3, 0, 36)
	rs.Finish()

	require.Equal(t, float64(10), testutil.ToFloat64(m.RowsProcessed))
	require.Equal(t, float64(2), testutil.ToFloat64(m.RowsSkipped))
	require.Equal(t, float64(100), testutil.ToFloat64(m.BytesProcessed))
	require.Equal(t, 1, testutil.CollectAndCount(m.RangeDuration))
	require.GreaterOrEqual(t, testutil.ToFloat64(m.RunDuration), float64(0))

	families, err := reg.Gather()
	require.Nil(t, err)
	require.Len(t, families, 6)
}
