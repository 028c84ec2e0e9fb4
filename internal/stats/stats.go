package stats

import (
	"sync"
	"time"
)

// RunStatistics contains statistics about a brc run. Safe for concurrent use by workers.
type RunStatistics struct {
	lock           sync.Mutex
	started        bool
	finished       bool
	startTime      time.Time
	totalRuntime   time.Duration
	rowsProcessed  int64
	rowsSkipped    int64
	bytesProcessed int64
	numKeys        int
	rangeRuntimes  []time.Duration // indexed by the position of the Range in its PartitionMap
	metrics        *Metrics
}

// CreateRunStatistics returns RunStatistics which also report into metrics, if it is non-nil
func CreateRunStatistics(metrics *Metrics) *RunStatistics {
	return &RunStatistics{metrics: metrics}
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numRanges int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rangeRuntimes = make([]time.Duration, numRanges)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return
	}
	rs.finished = true
	rs.totalRuntime = time.Since(rs.startTime)
	if rs.metrics != nil {
		rs.metrics.RunDuration.Set(rs.totalRuntime.Seconds())
	}
}

// EndRange tracks the end of the scan of a Range, which began at start
func (rs *RunStatistics) EndRange(idx int, start time.Time, rows, skipped, bytes int64) {
	elapsed := time.Since(start)
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if idx >= 0 && idx < len(rs.rangeRuntimes) {
		rs.rangeRuntimes[idx] = elapsed
	}
	rs.rowsProcessed += rows
	rs.rowsSkipped += skipped
	rs.bytesProcessed += bytes
	if rs.metrics != nil {
		rs.metrics.RowsProcessed.Add(float64(rows))
		rs.metrics.RowsSkipped.Add(float64(skipped))
		rs.metrics.BytesProcessed.Add(float64(bytes))
		rs.metrics.RangeDuration.Observe(elapsed.Seconds())
	}
}

// SetNumKeys records the number of distinct names in the final result
func (rs *RunStatistics) SetNumKeys(n int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.numKeys = n
	if rs.metrics != nil {
		rs.metrics.Keys.Set(float64(n))
	}
}

// GetNumKeys returns the number of distinct names in the final result
func (rs *RunStatistics) GetNumKeys() int {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.numKeys
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the run
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	if !rs.started {
		return 0
	}
	return time.Since(rs.startTime)
}

// GetNumRowsProcessed returns the number of records which were aggregated
func (rs *RunStatistics) GetNumRowsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsProcessed
}

// GetNumRowsSkipped returns the number of malformed records which were dropped
func (rs *RunStatistics) GetNumRowsSkipped() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsSkipped
}

// GetNumBytesProcessed returns the number of input bytes scanned
func (rs *RunStatistics) GetNumBytesProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.bytesProcessed
}

// GetRangeRuntimes returns the scan time of each Range, in dispatch order
func (rs *RunStatistics) GetRangeRuntimes() []time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	res := make([]time.Duration, len(rs.rangeRuntimes))
	copy(res, rs.rangeRuntimes)
	return res
}
