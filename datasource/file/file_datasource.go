package file

import (
	"os"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/internal/partition"
)

// DataSource is a memory-mapped file of name;value records
type DataSource struct {
	path  string
	data  []byte
	unmap func() error
}

// Open maps the file at path into memory
func Open(path string) (*DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.SourceError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.SourceError{Path: path, Op: "stat", Err: err}
	}
	if info.IsDir() {
		return nil, errors.SourceError{Path: path, Op: "map", Err: os.ErrInvalid}
	}
	fs := &DataSource{path: path}
	// a zero-length mapping is invalid, and there is nothing to read anyway
	if info.Size() == 0 {
		fs.data = []byte{}
		return fs, nil
	}
	data, unmap, err := mapFile(f, info.Size())
	if err != nil {
		return nil, errors.SourceError{Path: path, Op: "map", Err: err}
	}
	fs.data = data
	fs.unmap = unmap
	return fs, nil
}

// Name returns the path of the mapped file
func (fs *DataSource) Name() string {
	return fs.path
}

// Bytes returns the mapped contents of the file. The slice is invalid after Close.
func (fs *DataSource) Bytes() []byte {
	return fs.data
}

// Analyze returns a PartitionMap, describing how the file will be divided into Ranges
func (fs *DataSource) Analyze(numWorkers int, splitThreshold int) (brc.PartitionMap, error) {
	if fs.data == nil {
		return nil, errors.SourceError{Path: fs.path, Op: "analyze", Err: os.ErrClosed}
	}
	return partition.CreatePartitionMap(fs.data, numWorkers, splitThreshold), nil
}

// Close releases the mapping. It is safe to call more than once.
func (fs *DataSource) Close() error {
	fs.data = nil
	if fs.unmap == nil {
		return nil
	}
	unmap := fs.unmap
	fs.unmap = nil
	if err := unmap(); err != nil {
		return errors.SourceError{Path: fs.path, Op: "unmap", Err: err}
	}
	return nil
}
