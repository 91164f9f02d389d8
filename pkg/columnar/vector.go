package columnar

import (
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Vector is a growable column of T. The backing buffer always has length
// equal to the capacity; only the first Len elements are meaningful.
//
// Once a table attaches a vector, the methods that change its length or
// capacity fail with a schema error; Get, Set and the read methods keep
// working.
type Vector[T Element] struct {
	ops    *ops[T]
	values []T
	length int
	holder *Owner
}

// New creates a vector holding a copy of values, with capacity len(values).
func New[T Element](values ...T) *Vector[T] {
	buf := make([]T, len(values))
	copy(buf, values)
	return &Vector[T]{ops: opsFor[T](), values: buf, length: len(values)}
}

// NewWithCapacity creates an empty vector with the given capacity.
func NewWithCapacity[T Element](capacity int) *Vector[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Vector[T]{ops: opsFor[T](), values: make([]T, capacity)}
}

func zeroed[T Element](length int) *Vector[T] {
	return &Vector[T]{ops: opsFor[T](), values: make([]T, length), length: length}
}

func (v *Vector[T]) Kind() Kind { return v.ops.kind }
func (v *Vector[T]) Len() int   { return v.length }
func (v *Vector[T]) Cap() int   { return len(v.values) }

func (v *Vector[T]) owner() *Owner     { return v.holder }
func (v *Vector[T]) setOwner(o *Owner) { v.holder = o }

func (v *Vector[T]) detached(op string) error {
	if v.holder != nil {
		return errAttached(op)
	}
	return nil
}

func (v *Vector[T]) check(i int) error {
	if i < 0 || i >= v.length {
		return tableerrors.OutOfRange(i, v.length)
	}
	return nil
}

// Get returns element i.
func (v *Vector[T]) Get(i int) (T, error) {
	if err := v.check(i); err != nil {
		var zero T
		return zero, err
	}
	return v.values[i], nil
}

// Set overwrites element i.
func (v *Vector[T]) Set(i int, value T) error {
	if err := v.check(i); err != nil {
		return err
	}
	v.values[i] = value
	return nil
}

// Values returns a copy of the logical elements.
func (v *Vector[T]) Values() []T {
	out := make([]T, v.length)
	copy(out, v.values[:v.length])
	return out
}

// grow doubles the capacity when the buffer is full.
func (v *Vector[T]) grow() {
	if v.length < len(v.values) {
		return
	}
	capacity := 2 * len(v.values)
	if capacity == 0 {
		capacity = 1
	}
	v.realloc(capacity)
}

func (v *Vector[T]) realloc(capacity int) {
	buf := make([]T, capacity)
	copy(buf, v.values[:v.length])
	v.values = buf
}

// Append adds value after the last element.
func (v *Vector[T]) Append(value T) error {
	if err := v.detached("append"); err != nil {
		return err
	}
	return v.insertAt(v.length, value)
}

// InsertAt shifts elements at and after i one slot right and stores value at
// i. i may equal Len.
func (v *Vector[T]) InsertAt(i int, value T) error {
	if err := v.detached("insert"); err != nil {
		return err
	}
	return v.insertAt(i, value)
}

func (v *Vector[T]) insertAt(i int, value T) error {
	if i < 0 || i > v.length {
		return tableerrors.OutOfRange(i, v.length+1)
	}
	v.grow()
	copy(v.values[i+1:v.length+1], v.values[i:v.length])
	v.values[i] = value
	v.length++
	return nil
}

func (v *Vector[T]) RemoveAt(i int) error {
	if err := v.detached("remove"); err != nil {
		return err
	}
	if err := v.check(i); err != nil {
		return err
	}
	return v.removeRange(i, i+1)
}

func (v *Vector[T]) RemoveRange(from, to int) error {
	if err := v.detached("remove"); err != nil {
		return err
	}
	return v.removeRange(from, to)
}

func (v *Vector[T]) removeRange(from, to int) error {
	if from < 0 || from > v.length {
		return tableerrors.OutOfRange(from, v.length+1)
	}
	if to < from || to > v.length {
		return tableerrors.OutOfRange(to, v.length+1).WithDetail("from", from)
	}
	copy(v.values[from:], v.values[to:v.length])
	var zero T
	for k := v.length - (to - from); k < v.length; k++ {
		v.values[k] = zero
	}
	v.length -= to - from
	return nil
}

func (v *Vector[T]) unbox(value interface{}) (T, error) {
	t, ok := value.(T)
	if !ok {
		return t, tableerrors.TypeMismatch(v.ops.kind, describe(value))
	}
	return t, nil
}

func (v *Vector[T]) Value(i int) (interface{}, error) {
	if err := v.check(i); err != nil {
		return nil, err
	}
	return v.values[i], nil
}

func (v *Vector[T]) SetValue(i int, value interface{}) error {
	if err := v.check(i); err != nil {
		return err
	}
	t, err := v.unbox(value)
	if err != nil {
		return err
	}
	v.values[i] = t
	return nil
}

func (v *Vector[T]) AppendValue(value interface{}) error {
	if err := v.detached("append"); err != nil {
		return err
	}
	return v.insertValue(v.length, value)
}

func (v *Vector[T]) InsertValue(i int, value interface{}) error {
	if err := v.detached("insert"); err != nil {
		return err
	}
	return v.insertValue(i, value)
}

func (v *Vector[T]) insertValue(i int, value interface{}) error {
	if i < 0 || i > v.length {
		return tableerrors.OutOfRange(i, v.length+1)
	}
	t, err := v.unbox(value)
	if err != nil {
		return err
	}
	return v.insertAt(i, t)
}

func (v *Vector[T]) Accepts(value interface{}) bool {
	_, ok := value.(T)
	return ok
}

func (v *Vector[T]) String(i int) (string, error) {
	if err := v.check(i); err != nil {
		return "", err
	}
	return v.ops.format(v.values[i]), nil
}

func (v *Vector[T]) textAt(i int) string {
	return v.ops.format(v.values[i])
}

func (v *Vector[T]) Compare(i, j int) (int, error) {
	if err := v.check(i); err != nil {
		return 0, err
	}
	if err := v.check(j); err != nil {
		return 0, err
	}
	return v.compareAt(i, j), nil
}

func (v *Vector[T]) compareAt(i, j int) int {
	return v.ops.compare(v.values[i], v.values[j])
}

func (v *Vector[T]) Float(i int) (float64, error) {
	if v.ops.float == nil {
		return 0, tableerrors.Newf(tableerrors.ErrorTypeType, "column of kind %v is not numeric", v.ops.kind)
	}
	if err := v.check(i); err != nil {
		return 0, err
	}
	return v.ops.float(v.values[i]), nil
}

func (v *Vector[T]) Clone() Column {
	buf := make([]T, len(v.values))
	copy(buf, v.values)
	return &Vector[T]{ops: v.ops, values: buf, length: v.length}
}

func (v *Vector[T]) Resize(capacity int) error {
	if err := v.detached("resize"); err != nil {
		return err
	}
	return v.resizeTo(capacity)
}

func (v *Vector[T]) resizeTo(capacity int) error {
	if capacity < v.length {
		return tableerrors.Newf(tableerrors.ErrorTypeValidation,
			"capacity %d is below length %d", capacity, v.length)
	}
	if capacity != len(v.values) {
		v.realloc(capacity)
	}
	return nil
}

func (v *Vector[T]) Permute(perm []int) error {
	if err := v.detached("permute"); err != nil {
		return err
	}
	return v.permute(perm)
}

func (v *Vector[T]) permute(perm []int) error {
	if len(perm) != v.length {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema,
			"permutation has %d entries, column has %d", len(perm), v.length)
	}
	seen := make([]bool, v.length)
	for _, p := range perm {
		if p < 0 || p >= v.length {
			return tableerrors.OutOfRange(p, v.length)
		}
		if seen[p] {
			return tableerrors.Newf(tableerrors.ErrorTypeValidation, "permutation repeats index %d", p)
		}
		seen[p] = true
	}
	buf := make([]T, len(v.values))
	for k, p := range perm {
		buf[k] = v.values[p]
	}
	v.values = buf
	return nil
}

func (v *Vector[T]) Select(rows []int) (Column, error) {
	buf := make([]T, len(rows))
	for k, r := range rows {
		if err := v.check(r); err != nil {
			return nil, err
		}
		buf[k] = v.values[r]
	}
	return &Vector[T]{ops: v.ops, values: buf, length: len(rows)}, nil
}

func (v *Vector[T]) Clear() error {
	if err := v.detached("clear"); err != nil {
		return err
	}
	v.clear()
	return nil
}

func (v *Vector[T]) clear() {
	var zero T
	for i := 0; i < v.length; i++ {
		v.values[i] = zero
	}
	v.length = 0
}

func (v *Vector[T]) MemoryUsage() int64 {
	total := int64(len(v.values)) * v.ops.size
	if s, ok := any(v.values).([]string); ok {
		for _, str := range s[:v.length] {
			total += int64(len(str))
		}
	}
	return total
}
