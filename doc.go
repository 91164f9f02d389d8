// Package coltable provides an in-memory, typed, columnar table engine.
//
// A table stores data column by column. Every column holds one of nine
// element kinds (int8, int16, int32, int64, float32, float64, char, bool
// and text), all columns share one row count and one backing capacity, and
// columns are addressed by position or, for named tables, by name.
//
// # Architecture
//
// The engine is built around three ideas:
//
// 1. Typed storage: pkg/columnar implements every kind with one generic
// Vector[T]. Code that knows the element type reads and writes it directly;
// code that does not goes through the boxed Column interface.
//
// 2. Shared capacity: pkg/table grows all columns together (doubling), can
// release memory explicitly with Flush, and shrinks implicitly after large
// removals according to a configurable policy.
//
// 3. Validate, then commit: every row write checks arity and kinds before
// any column is touched, so a failed call leaves the table unchanged.
//
// # Quick Start
//
//	import (
//	    "github.com/ajitpratap0/coltable/pkg/columnar"
//	    "github.com/ajitpratap0/coltable/pkg/table"
//	)
//
//	t, _ := table.FromSchema(table.Schema{
//	    {Name: "name", Kind: columnar.KindText},
//	    {Name: "age", Kind: columnar.KindInt32},
//	})
//	_ = t.AddRow("ann", int32(31))
//	_ = t.AddRow("bob", int32(27))
//
//	_ = t.SortBy(table.Name("age"))
//	avg, _ := t.Average(table.Name("age")) // 29
//	matches, _ := t.Filter(table.Name("name"), "a.*") // names starting with "a"
//
// # Key Packages
//
//	pkg/columnar     - Typed columns and the nine element kinds
//	pkg/table        - The table: rows, columns, search, sort, aggregates
//	pkg/record       - Typed record bindings onto named tables
//	pkg/tableerrors  - Structured error handling
//	pkg/config       - YAML and environment configuration
//	pkg/logger       - Structured logging
//	pkg/metrics      - Prometheus metrics per table
//	pkg/snapshot     - Compressed binary snapshots
//	pkg/compression  - Compression algorithms used by snapshots
//	pkg/arrowconv    - Apache Arrow interop
//	pkg/json         - JSON row encoding and decoding
//
// The coltable command (cmd/coltable) loads CSV files, snapshots and Arrow
// streams and exposes info, stats, sort, filter and convert subcommands.
package coltable
