// Package columnar implements the typed columns that back a coltable Table.
//
// # Overview
//
// A column is a homogeneous, growable sequence of one of nine element kinds:
//
//	int8, int16, int32, int64   signed integers
//	float32, float64            IEEE floats
//	Char                        a single Unicode character
//	bool                        false orders before true
//	string                      text, ordered lexicographically
//
// Every kind is served by the generic Vector[T]. Code that does not know
// the element type works through the Column interface, which boxes values in
// interface{} and checks their dynamic type on every write. Code that does
// know it uses the typed Get/Set/Append/InsertAt methods directly:
//
//	ages := columnar.New[int32](31, 27, 45)
//	_ = ages.Set(1, 28)
//	v, _ := ages.Get(1) // 28
//
//	var c columnar.Column = ages
//	_ = c.SetValue(0, "x") // type error, column unchanged
//
// # Capacity
//
// A vector tracks a logical length and a backing capacity separately.
// Resize sets the capacity to an exact value, which is how a Table keeps all
// of its columns at one shared capacity. A standalone vector doubles its
// capacity when an append or insert finds the buffer full.
//
// # Ownership
//
// A Table attaches its columns to an Owner. An attached column still serves
// reads and in-place writes, but Append, Insert, Remove, Resize, Permute and
// Clear fail with a schema error; the table changes rows through the Owner so
// that every column keeps the same length and capacity. Removing or replacing
// a column detaches it.
//
// # Canonical text and ordering
//
// String(i) renders an element the way search and filter see it: integers in
// base 10, floats as the shortest decimal without exponent, chars as the
// character itself, booleans as "true"/"false" and text verbatim. Compare
// gives the total order used by sorting; StablePermutation computes a stable
// ascending order without moving any data.
package columnar
