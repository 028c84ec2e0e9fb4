package brc

// PartitionMap is an iterator over the Ranges of a Source. Returned by
// Source.Analyze(), the driver iterates through Ranges and assigns each one
// to a worker.
type PartitionMap interface {
	HasNext() bool
	Next() Range
	Len() int
}

// Source is an immutable input buffer holding the whole file. The bytes
// returned by Bytes must stay valid and unchanged until Close is called, and
// every table built from them must be finalized before then.
type Source interface {
	Name() string                                                     // for logging
	Bytes() []byte                                                    // the complete input
	Analyze(numWorkers int, splitThreshold int) (PartitionMap, error) // how the input is divided into Ranges
	Close() error                                                     // releases the input
}
