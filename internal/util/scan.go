package util

import (
	"fmt"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/internal/scan"
	"github.com/go-sif/brc/internal/table"
)

// ScanOperation scans a single Range into a table
type ScanOperation func(data []byte, r brc.Range, tbl *table.Table) (scan.Counts, error)

// SafeScanOperation wraps a ScanOperation such that panics are recovered and nice error messages are constructed
func SafeScanOperation(scanOp ScanOperation) (safeScanOp ScanOperation) {
	return func(data []byte, r brc.Range, tbl *table.Table) (counts scan.Counts, err error) {
		defer func() {
			if p := recover(); p != nil {
				if anErr, ok := p.(error); ok {
					err = fmt.Errorf("Scan Panic: %w\nRange: %s\n%s", anErr, r, GetTrace())
				} else {
					err = fmt.Errorf("Scan Panic: %v\nRange: %s\n%s", p, r, GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Scan Error: %w\nRange: %s", err, r)
			}
		}()
		counts, err = scanOp(data, r, tbl)
		return
	}
}
