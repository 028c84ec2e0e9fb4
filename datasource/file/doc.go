// Package file provides a Source which memory-maps a single file on disk.
// The mapping is read-only and shared by every worker; it must stay open
// until all results derived from it have been finalized.
package file
