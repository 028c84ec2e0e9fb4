package brc

import "github.com/go-sif/brc/fixed"

// A Record is the finalized, display-ready statistics for a single name
type Record struct {
	Name  string
	Min   fixed.Decimal
	Avg   fixed.Decimal
	Max   fixed.Decimal
	Count int64
}
