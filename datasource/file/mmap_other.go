//go:build !unix

package file

import (
	"io"
	"os"
)

// without mmap, the whole file is read into memory instead
func mapFile(f *os.File, size int64) ([]byte, func() error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
