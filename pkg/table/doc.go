// Package table implements an in-memory typed columnar table.
//
// A Table is an ordered set of columnar.Column values that share one logical
// row count and one backing capacity. Every row operation touches all
// columns together, so columns never disagree on length.
//
// # Construction
//
//	t := table.New()                                   // no columns, no rows
//	t, err := table.FromColumns(cols, []string{"id", "name"})
//	t, err := table.FromSchema(table.Schema{
//	    {Name: "id", Kind: columnar.KindInt64},
//	    {Name: "name", Kind: columnar.KindText},
//	})
//
// # Addressing columns
//
// Columns are referenced through a Ref: table.Index(2) or table.Name("age").
// A bad index is an out-of-range error, a missing name an unknown-column
// error. A table is either fully named or fully unnamed.
//
// # Capacity
//
// Adding a row to a full table doubles the capacity of every column at once.
// Removing rows may release capacity: when capacity exceeds
// ShrinkFactor*(rows+ShrinkBuffer) it is cut to rows+ShrinkBuffer. Flush
// trims capacity to exactly the row count.
//
// # Errors
//
// All failures are *tableerrors.Error values raised before any column is
// modified, so a failed call leaves the table as it was.
//
// # Thread Safety
//
// A Table is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
package table
