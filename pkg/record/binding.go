// Package record binds Go structs to table rows without reflection.
//
// A Binding lists, once, how each field of a record type maps to a column:
// its column name, its element kind, and a getter/setter pair. A Binding is
// then attached to a table with Bind, which resolves every field to a
// column position and checks kinds. The resolved Bound reads and writes
// whole rows as records.
//
//	type Person struct {
//	    Name string
//	    Age  int32
//	}
//
//	b := record.NewBuilder[Person]()
//	record.Field(b, "name", func(p *Person) string { return p.Name }, func(p *Person, v string) { p.Name = v })
//	record.Field(b, "age", func(p *Person) int32 { return p.Age }, func(p *Person, v int32) { p.Age = v })
//	binding, err := b.Build()
//
//	t, _ := binding.NewTable()
//	rows, _ := binding.Bind(t)
//	_ = rows.Append(&Person{Name: "ann", Age: 31})
//	p, _ := rows.Read(0)
package record

import (
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// field is one declared record field.
type field[R any] struct {
	name  string
	kind  columnar.Kind
	value func(r *R) interface{}
	load  func(r *R, c columnar.Column, row int) error
}

// Builder collects field declarations for record type R.
type Builder[R any] struct {
	fields []field[R]
	err    error
}

// NewBuilder starts an empty declaration for R.
func NewBuilder[R any]() *Builder[R] {
	return &Builder[R]{}
}

// Field declares that the column name holds values of type T, read from a
// record with get and written back with set. Declaration errors are
// reported by Build.
func Field[R any, T columnar.Element](b *Builder[R], name string, get func(*R) T, set func(*R, T)) *Builder[R] {
	if b.err != nil {
		return b
	}
	if name == "" || get == nil || set == nil {
		b.err = tableerrors.Newf(tableerrors.ErrorTypeBinding,
			"field %d needs a name, a getter and a setter", len(b.fields))
		return b
	}
	b.fields = append(b.fields, field[R]{
		name:  name,
		kind:  columnar.KindFor[T](),
		value: func(r *R) interface{} { return get(r) },
		load: func(r *R, c columnar.Column, row int) error {
			v, err := columnar.As[T](c)
			if err != nil {
				return err
			}
			x, err := v.Get(row)
			if err != nil {
				return err
			}
			set(r, x)
			return nil
		},
	})
	return b
}

// Build validates the declarations and freezes them into a Binding.
func (b *Builder[R]) Build() (*Binding[R], error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.fields) == 0 {
		return nil, tableerrors.New(tableerrors.ErrorTypeBinding, "record declares no fields")
	}
	index := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		if _, dup := index[f.name]; dup {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeBinding, "field %q declared twice", f.name).
				WithDetail("field", f.name)
		}
		index[f.name] = i
	}
	return &Binding[R]{
		fields: append([]field[R](nil), b.fields...),
		index:  index,
	}, nil
}

// Binding is an immutable field-to-column mapping for R.
type Binding[R any] struct {
	fields []field[R]
	index  map[string]int
}

// Schema returns one named field per declared record field, in
// declaration order.
func (b *Binding[R]) Schema() table.Schema {
	s := make(table.Schema, len(b.fields))
	for i, f := range b.fields {
		s[i] = table.Field{Name: f.name, Kind: f.kind}
	}
	return s
}

// NewTable creates an empty table with one column per field.
func (b *Binding[R]) NewTable(opts ...table.Option) (*table.Table, error) {
	return table.FromSchema(b.Schema(), opts...)
}

// Bind resolves the binding against t. Every field needs a column of the
// same name and kind, and every column needs a field.
func (b *Binding[R]) Bind(t *table.Table) (*Bound[R], error) {
	bound := &Bound[R]{binding: b, table: t}
	if err := bound.resolve(); err != nil {
		return nil, err
	}
	return bound, nil
}
