package record

import (
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Bound reads and writes records against one table. Column positions are
// resolved once and re-resolved only when the table's columns change.
type Bound[R any] struct {
	binding   *Binding[R]
	table     *table.Table
	version   uint64
	positions []int // table column of each field
}

func (b *Bound[R]) resolve() error {
	t := b.table
	if !t.HasColumnNames() {
		return tableerrors.New(tableerrors.ErrorTypeBinding, "table has no column names")
	}
	positions := make([]int, len(b.binding.fields))
	for i, f := range b.binding.fields {
		pos := t.ColumnIndex(f.name)
		if pos < 0 {
			return tableerrors.Newf(tableerrors.ErrorTypeBinding, "field %q has no matching column", f.name).
				WithDetail("field", f.name)
		}
		c, _ := t.ColumnAt(pos)
		if c.Kind() != f.kind {
			return tableerrors.TypeMismatch(f.kind, c.Kind()).WithDetail("field", f.name)
		}
		positions[i] = pos
	}
	if t.ColumnCount() != len(positions) {
		for _, name := range t.ColumnNames() {
			if _, ok := b.binding.index[name]; !ok {
				return tableerrors.Newf(tableerrors.ErrorTypeBinding, "column %q has no matching field", name).
					WithDetail("column", name)
			}
		}
	}
	b.positions = positions
	b.version = t.Version()
	return nil
}

func (b *Bound[R]) refresh() error {
	if b.table.Version() == b.version {
		return nil
	}
	return b.resolve()
}

// Table returns the bound table.
func (b *Bound[R]) Table() *table.Table { return b.table }

// Read materializes row as a new record.
func (b *Bound[R]) Read(row int) (R, error) {
	var r R
	err := b.ReadInto(row, &r)
	return r, err
}

// ReadInto overwrites the bound fields of r with row.
func (b *Bound[R]) ReadInto(row int, r *R) error {
	if err := b.refresh(); err != nil {
		return err
	}
	if row < 0 || row >= b.table.Rows() {
		return tableerrors.OutOfRange(row, b.table.Rows())
	}
	for i, f := range b.binding.fields {
		c, _ := b.table.ColumnAt(b.positions[i])
		if err := f.load(r, c, row); err != nil {
			return err
		}
	}
	return nil
}

// values lays out r's fields in table column order.
func (b *Bound[R]) values(r *R) []interface{} {
	out := make([]interface{}, len(b.positions))
	for i, f := range b.binding.fields {
		out[b.positions[i]] = f.value(r)
	}
	return out
}

// Write overwrites row with r.
func (b *Bound[R]) Write(row int, r *R) error {
	if err := b.refresh(); err != nil {
		return err
	}
	return b.table.SetRow(row, b.values(r)...)
}

// Append adds r as a new last row.
func (b *Bound[R]) Append(r *R) error {
	if err := b.refresh(); err != nil {
		return err
	}
	return b.table.AddRow(b.values(r)...)
}

// Insert adds r before row.
func (b *Bound[R]) Insert(row int, r *R) error {
	if err := b.refresh(); err != nil {
		return err
	}
	return b.table.InsertRow(row, b.values(r)...)
}

// All reads every row.
func (b *Bound[R]) All() ([]R, error) {
	out := make([]R, b.table.Rows())
	for i := range out {
		if err := b.ReadInto(i, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Each reads the table in batches of at most batchSize records and passes
// each batch to fn. The slice is reused between calls. fn must not modify
// the table.
func (b *Bound[R]) Each(batchSize int, fn func(batch []R) error) error {
	if batchSize <= 0 {
		return tableerrors.Newf(tableerrors.ErrorTypeValidation, "batch size %d must be positive", batchSize)
	}
	total := b.table.Rows()
	batch := make([]R, 0, batchSize)
	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}
		batch = batch[:end-start]
		for i := range batch {
			var zero R
			batch[i] = zero
			if err := b.ReadInto(start+i, &batch[i]); err != nil {
				return err
			}
		}
		if err := fn(batch); err != nil {
			return err
		}
	}
	return nil
}
