package brc

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about a brc run
type RuntimeStatistics interface {
	// GetStartTime returns the start time of the run
	GetStartTime() time.Time
	// GetRuntime returns the running time of the run
	GetRuntime() time.Duration
	// GetNumRowsProcessed returns the number of records which were aggregated
	GetNumRowsProcessed() int64
	// GetNumRowsSkipped returns the number of malformed records which were dropped
	GetNumRowsSkipped() int64
	// GetNumBytesProcessed returns the number of input bytes scanned
	GetNumBytesProcessed() int64
	// GetNumKeys returns the number of distinct names in the final result
	GetNumKeys() int
	// GetRangeRuntimes returns the scan time of each Range, in dispatch order
	GetRangeRuntimes() []time.Duration
}
