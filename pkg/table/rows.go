package table

import (
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	stringpool "github.com/ajitpratap0/coltable/pkg/strings"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Row returns one value per column, in column order.
func (t *Table) Row(i int) ([]interface{}, error) {
	if err := t.checkRow(i); err != nil {
		return nil, err
	}
	row := make([]interface{}, len(t.columns))
	for k, c := range t.columns {
		v, err := c.Value(i)
		if err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeInternal,
				stringpool.Sprintf("column %s is out of step with the table", t.describe(k))).
				WithDetail("column", k)
		}
		row[k] = v
	}
	return row, nil
}

// validateRow checks count and kinds of values against the columns.
func (t *Table) validateRow(values []interface{}) error {
	if len(t.columns) == 0 {
		return tableerrors.New(tableerrors.ErrorTypeSchema, "table has no columns")
	}
	if len(values) != len(t.columns) {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema,
			"row has %d values, table has %d columns", len(values), len(t.columns))
	}
	for k, v := range values {
		c := t.columns[k]
		if !c.Accepts(v) {
			return tableerrors.Wrap(tableerrors.TypeMismatch(c.Kind(), kindName(v)),
				tableerrors.ErrorTypeSchema, stringpool.Sprintf("column %s", t.describe(k))).
				WithDetail("column", k)
		}
	}
	return nil
}

func kindName(v interface{}) string {
	if k, ok := columnar.KindOf(v); ok {
		return k.String()
	}
	return stringpool.Sprintf("%T", v)
}

func (t *Table) describe(col int) string {
	if t.names != nil {
		return stringpool.Sprintf("%q", t.names[col])
	}
	return Index(col).String()
}

// SetRow overwrites row i. Nothing is written unless every value matches
// its column.
func (t *Table) SetRow(i int, values ...interface{}) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	if err := t.validateRow(values); err != nil {
		return err
	}
	for k, c := range t.columns {
		_ = c.SetValue(i, values[k])
	}
	return nil
}

// AddRow appends a row, growing the capacity first when the table is full.
func (t *Table) AddRow(values ...interface{}) error {
	if err := t.validateRow(values); err != nil {
		return err
	}
	t.ensureCapacity(t.rows + 1)
	for k, c := range t.columns {
		_ = t.owner.Append(c, values[k])
	}
	t.rows++
	t.metrics.RowsAdded(1)
	t.metrics.Observe(t.rows, t.capacity)
	return nil
}

// InsertRow inserts a row before row i, shifting later rows down.
// i may equal Rows.
func (t *Table) InsertRow(i int, values ...interface{}) error {
	if i < 0 || i > t.rows {
		return tableerrors.OutOfRange(i, t.rows+1)
	}
	if err := t.validateRow(values); err != nil {
		return err
	}
	t.ensureCapacity(t.rows + 1)
	for k, c := range t.columns {
		_ = t.owner.Insert(c, i, values[k])
	}
	t.rows++
	t.metrics.RowsAdded(1)
	t.metrics.Observe(t.rows, t.capacity)
	return nil
}

// RemoveRow deletes row i and applies the shrink policy.
func (t *Table) RemoveRow(i int) error {
	if err := t.checkRow(i); err != nil {
		return err
	}
	return t.RemoveRows(i, i+1)
}

// RemoveRows deletes the half-open range [from, to) from every column in one
// pass and applies the shrink policy.
func (t *Table) RemoveRows(from, to int) error {
	if from < 0 || from > t.rows {
		return tableerrors.OutOfRange(from, t.rows+1)
	}
	if to < from || to > t.rows {
		return tableerrors.OutOfRange(to, t.rows+1).WithDetail("from", from)
	}
	if from == to {
		return nil
	}
	for _, c := range t.columns {
		_ = t.owner.RemoveRange(c, from, to)
	}
	n := to - from
	t.rows -= n
	t.metrics.RowsRemoved(n)
	t.metrics.Observe(t.rows, t.capacity)
	t.maybeShrink()
	return nil
}

// Clear removes every row and releases all capacity. Columns are kept.
func (t *Table) Clear() {
	removed := t.rows
	for _, c := range t.columns {
		_ = t.owner.Clear(c)
	}
	t.rows = 0
	t.metrics.RowsRemoved(removed)
	if t.capacity != 0 {
		t.resize(0, metrics.ReasonClear)
	}
	t.metrics.Observe(0, 0)
}
