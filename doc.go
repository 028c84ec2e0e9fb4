// Package brc contains the core vocabulary of brc, a parallel aggregator for
// large "name;value" measurement files. An input Source is cut into
// line-aligned Ranges, each Range is scanned by its own worker into a private
// aggregate table, and the tables are merged and finalized into Records
// sorted by name. This root package defines the types shared by the
// datasources, the driver and the output formats.
package brc
