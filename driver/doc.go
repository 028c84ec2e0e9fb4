// Package driver runs an aggregation: it asks a Source for its Ranges,
// scans each Range on a bounded pool of goroutines into a private table,
// folds the tables together and finalizes the result. Everything returned
// by Run is independent of the Source, which may be closed afterwards.
package driver
