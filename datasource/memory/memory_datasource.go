// Package memory provides a Source over a buffer which is already in memory,
// such as standard input or test fixtures.
package memory

import (
	"io"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/internal/partition"
)

// DataSource is a buffer of name;value records
type DataSource struct {
	name string
	data []byte
}

// Create wraps data, which must not be modified while it is in use
func Create(name string, data []byte) *DataSource {
	if data == nil {
		data = []byte{}
	}
	return &DataSource{name: name, data: data}
}

// ReadAll reads r to completion and wraps the result
func ReadAll(name string, r io.Reader) (*DataSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.SourceError{Path: name, Op: "read", Err: err}
	}
	return Create(name, data), nil
}

// Name returns the name of this DataSource
func (ms *DataSource) Name() string {
	return ms.name
}

// Bytes returns the underlying buffer
func (ms *DataSource) Bytes() []byte {
	return ms.data
}

// Analyze returns a PartitionMap, describing how the buffer will be divided into Ranges
func (ms *DataSource) Analyze(numWorkers int, splitThreshold int) (brc.PartitionMap, error) {
	return partition.CreatePartitionMap(ms.data, numWorkers, splitThreshold), nil
}

// Close is a no-op; the buffer is owned by the garbage collector
func (ms *DataSource) Close() error {
	return nil
}
