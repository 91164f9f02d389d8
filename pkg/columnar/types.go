package columnar

import (
	"fmt"

	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Kind identifies the element type stored in a column
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindChar
	KindBool
	KindText
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindChar:    "char",
	KindBool:    "bool",
	KindText:    "text",
}

// Kinds lists every valid element kind in declaration order.
var Kinds = []Kind{
	KindInt8, KindInt16, KindInt32, KindInt64,
	KindFloat32, KindFloat64, KindChar, KindBool, KindText,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the nine element kinds.
func (k Kind) Valid() bool {
	return k >= KindInt8 && k <= KindText
}

// IsNumeric reports whether columns of this kind support aggregation.
func (k Kind) IsNumeric() bool {
	return k >= KindInt8 && k <= KindFloat64
}

// IsInteger reports whether k is one of the signed integer kinds.
func (k Kind) IsInteger() bool {
	return k >= KindInt8 && k <= KindInt64
}

// ParseKind returns the kind named s ("int8", "float64", "text", ...).
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, tableerrors.Newf(tableerrors.ErrorTypeValidation, "unknown column kind %q", s)
}

// Char is a single Unicode character. It is a distinct type so that char
// columns and int32 columns never accept each other's values.
type Char rune

func (c Char) String() string { return string(rune(c)) }

// Element is the closed set of types a column can hold.
type Element interface {
	int8 | int16 | int32 | int64 | float32 | float64 | Char | bool | string
}

// KindOf returns the kind whose element type is v's dynamic type.
func KindOf(v interface{}) (Kind, bool) {
	switch v.(type) {
	case int8:
		return KindInt8, true
	case int16:
		return KindInt16, true
	case int32:
		return KindInt32, true
	case int64:
		return KindInt64, true
	case float32:
		return KindFloat32, true
	case float64:
		return KindFloat64, true
	case Char:
		return KindChar, true
	case bool:
		return KindBool, true
	case string:
		return KindText, true
	default:
		return KindInvalid, false
	}
}

// KindFor returns the kind of the element type T.
func KindFor[T Element]() Kind {
	return opsFor[T]().kind
}

// describe names the kind of v for error messages.
func describe(v interface{}) string {
	if k, ok := KindOf(v); ok {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}

// Column is the interface shared by all nine typed columns. It is closed:
// the only implementations are the *Vector[T] instantiations in this package.
//
// A column keeps a logical length and a backing capacity. Capacity only
// changes through Resize, or through Append/Insert when a standalone column
// runs out of room. A column attached to a table (see Owner) refuses every
// call that would change its length or capacity; the table makes those
// changes itself, resizing before each write so automatic growth never
// fires.
type Column interface {
	// Kind returns the element kind.
	Kind() Kind
	// Len returns the logical number of elements.
	Len() int
	// Cap returns the backing capacity.
	Cap() int

	// Value returns element i boxed in an interface.
	Value(i int) (interface{}, error)
	// SetValue overwrites element i. v must have the column's element type.
	SetValue(i int, v interface{}) error
	// AppendValue adds v after the last element.
	AppendValue(v interface{}) error
	// InsertValue shifts elements at and after i right and stores v at i.
	// i may equal Len.
	InsertValue(i int, v interface{}) error
	// Accepts reports whether v has the column's element type.
	Accepts(v interface{}) bool

	// RemoveAt removes element i, shifting later elements left.
	RemoveAt(i int) error
	// RemoveRange removes the half-open range [from, to).
	RemoveRange(from, to int) error

	// String returns the canonical text of element i.
	String(i int) (string, error)
	// Compare orders elements i and j: -1, 0 or +1.
	Compare(i, j int) (int, error)
	// Float returns element i widened to float64. Fails for non-numeric kinds.
	Float(i int) (float64, error)

	// Clone returns a deep copy with the same length and capacity.
	Clone() Column
	// Resize sets the backing capacity to exactly capacity (>= Len).
	Resize(capacity int) error
	// Permute reorders elements so that new element k is old element perm[k].
	Permute(perm []int) error
	// Select returns a new column holding the given rows in order, with
	// capacity equal to len(rows).
	Select(rows []int) (Column, error)

	// Clear drops all elements and keeps the capacity.
	Clear() error
	// MemoryUsage estimates the bytes held by the backing buffer.
	MemoryUsage() int64

	compareAt(i, j int) int
	textAt(i int) string

	owner() *Owner
	setOwner(o *Owner)
	insertValue(i int, v interface{}) error
	removeRange(from, to int) error
	resizeTo(capacity int) error
	permute(perm []int) error
	clear()
}

// As returns c as a *Vector[T], or a type error if c holds another kind.
func As[T Element](c Column) (*Vector[T], error) {
	v, ok := c.(*Vector[T])
	if !ok {
		return nil, tableerrors.TypeMismatch(KindFor[T](), c.Kind())
	}
	return v, nil
}

// Make creates a zero-filled column of the given kind whose length and
// capacity are both length.
func Make(kind Kind, length int) (Column, error) {
	if length < 0 {
		return nil, tableerrors.Newf(tableerrors.ErrorTypeValidation, "negative column length %d", length)
	}
	switch kind {
	case KindInt8:
		return zeroed[int8](length), nil
	case KindInt16:
		return zeroed[int16](length), nil
	case KindInt32:
		return zeroed[int32](length), nil
	case KindInt64:
		return zeroed[int64](length), nil
	case KindFloat32:
		return zeroed[float32](length), nil
	case KindFloat64:
		return zeroed[float64](length), nil
	case KindChar:
		return zeroed[Char](length), nil
	case KindBool:
		return zeroed[bool](length), nil
	case KindText:
		return zeroed[string](length), nil
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", kind)
	}
}

// MakeEmpty creates an empty column of the given kind with the given capacity.
func MakeEmpty(kind Kind, capacity int) (Column, error) {
	c, err := Make(kind, 0)
	if err != nil {
		return nil, err
	}
	if err := c.Resize(capacity); err != nil {
		return nil, err
	}
	return c, nil
}

// Text returns the canonical text of element i without bounds checking.
// Callers must guarantee 0 <= i < c.Len().
func Text(c Column, i int) string {
	return c.textAt(i)
}

// StablePermutation returns the permutation of [0, c.Len()) that sorts c
// ascending. Rows with equal values keep their relative order.
func StablePermutation(c Column) []int {
	perm := make([]int, c.Len())
	for i := range perm {
		perm[i] = i
	}
	stableSort(perm, c.compareAt)
	return perm
}

// Equal reports whether a and b have the same kind, length and elements.
func Equal(a, b Column) bool {
	if a.Kind() != b.Kind() || a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		av, _ := a.Value(i)
		bv, _ := b.Value(i)
		if av != bv {
			return false
		}
	}
	return true
}
