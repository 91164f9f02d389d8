package table

import (
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// Column returns the live column. It stays shared with the table until it is
// replaced or removed. Set and SetValue write through to the table; calls
// that would change the column's length or capacity fail until the table
// releases it.
func (t *Table) Column(ref Ref) (columnar.Column, error) {
	i, err := ref.resolve(t)
	if err != nil {
		return nil, err
	}
	return t.columns[i], nil
}

// ColumnAt is Column(Index(i)).
func (t *Table) ColumnAt(i int) (columnar.Column, error) {
	return t.Column(Index(i))
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// ColumnName returns the name of column i, or "" when the table is unnamed.
func (t *Table) ColumnName(i int) (string, error) {
	if _, err := Index(i).resolve(t); err != nil {
		return "", err
	}
	if t.names == nil {
		return "", nil
	}
	return t.names[i], nil
}

// ColumnNames returns a copy of the names, or nil when the table is unnamed.
func (t *Table) ColumnNames() []string {
	if t.names == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// HasColumnNames reports whether the table is named.
func (t *Table) HasColumnNames() bool {
	return t.names != nil
}

// SetColumnNames names every column at once. nil removes all names.
func (t *Table) SetColumnNames(names []string) error {
	if names == nil {
		t.names = nil
	} else {
		if err := validateNames(names, len(t.columns)); err != nil {
			return err
		}
		t.names = append([]string(nil), names...)
	}
	t.reindex()
	t.version++
	return nil
}

// SetColumnName renames one column of a named table. A single-column
// unnamed table becomes named.
func (t *Table) SetColumnName(ref Ref, name string) error {
	i, err := ref.resolve(t)
	if err != nil {
		return err
	}
	if name == "" {
		return tableerrors.New(tableerrors.ErrorTypeSchema, "column name must not be empty")
	}
	if t.names == nil {
		if len(t.columns) != 1 {
			return tableerrors.New(tableerrors.ErrorTypeSchema,
				"table has no column names; use SetColumnNames")
		}
		t.names = []string{""}
	}
	if j, ok := t.index[name]; ok && j != i {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema, "duplicate column name %q", name).
			WithDetail("column", name)
	}
	t.names[i] = name
	t.reindex()
	t.version++
	return nil
}

// AddColumn appends an unnamed column. Its length must equal Rows unless
// the table has no columns yet, in which case the table adopts its length.
// The table takes ownership of col.
func (t *Table) AddColumn(col columnar.Column) error {
	return t.insertColumn(len(t.columns), "", col)
}

// AddNamedColumn appends a named column.
func (t *Table) AddNamedColumn(name string, col columnar.Column) error {
	if name == "" {
		return tableerrors.New(tableerrors.ErrorTypeSchema, "column name must not be empty")
	}
	return t.insertColumn(len(t.columns), name, col)
}

// InsertColumn inserts an unnamed column at position i, shifting later
// columns right. i may equal ColumnCount.
func (t *Table) InsertColumn(i int, col columnar.Column) error {
	return t.insertColumn(i, "", col)
}

// InsertNamedColumn inserts a named column at position i.
func (t *Table) InsertNamedColumn(i int, name string, col columnar.Column) error {
	if name == "" {
		return tableerrors.New(tableerrors.ErrorTypeSchema, "column name must not be empty")
	}
	return t.insertColumn(i, name, col)
}

func (t *Table) checkIncoming(col columnar.Column) error {
	if col == nil {
		return tableerrors.New(tableerrors.ErrorTypeValidation, "column is nil")
	}
	if columnar.Attached(col) {
		return tableerrors.New(tableerrors.ErrorTypeValidation, "column already belongs to a table")
	}
	return nil
}

// insertColumn adds col at pos. name == "" means unnamed.
func (t *Table) insertColumn(pos int, name string, col columnar.Column) error {
	if pos < 0 || pos > len(t.columns) {
		return tableerrors.OutOfRange(pos, len(t.columns)+1).WithDetail("target", "column")
	}
	if err := t.checkIncoming(col); err != nil {
		return err
	}
	empty := len(t.columns) == 0
	named := name != ""
	if !empty && named != (t.names != nil) {
		if named {
			return tableerrors.Newf(tableerrors.ErrorTypeSchema,
				"cannot add named column %q to an unnamed table", name)
		}
		return tableerrors.New(tableerrors.ErrorTypeSchema, "cannot add an unnamed column to a named table")
	}
	if named {
		if _, dup := t.index[name]; dup {
			return tableerrors.Newf(tableerrors.ErrorTypeSchema, "duplicate column name %q", name).
				WithDetail("column", name)
		}
	}
	if !empty && col.Len() != t.rows {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema,
			"column has %d rows, table has %d", col.Len(), t.rows)
	}

	if empty {
		t.rows = col.Len()
		t.capacity = t.rows
		t.names = nil
	}
	_ = t.owner.Attach(col)
	_ = t.owner.Resize(col, t.capacity)

	t.columns = append(t.columns, nil)
	copy(t.columns[pos+1:], t.columns[pos:])
	t.columns[pos] = col
	if named {
		t.names = append(t.names, "")
		copy(t.names[pos+1:], t.names[pos:])
		t.names[pos] = name
	}
	t.reindex()
	t.version++

	t.logger.Debug("column added",
		zap.Int("position", pos),
		zap.String("name", name),
		zap.Stringer("kind", col.Kind()))
	t.metrics.Observe(t.rows, t.capacity)
	return nil
}

// RemoveColumn removes a column from the table. Removing the last column
// resets the table to zero rows and zero capacity.
func (t *Table) RemoveColumn(ref Ref) error {
	i, err := ref.resolve(t)
	if err != nil {
		return err
	}
	t.owner.Detach(t.columns[i])
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	if t.names != nil {
		t.names = append(t.names[:i], t.names[i+1:]...)
	}
	if len(t.columns) == 0 {
		t.columns = nil
		t.names = nil
		t.rows = 0
		t.capacity = 0
	}
	t.reindex()
	t.version++
	t.metrics.Observe(t.rows, t.capacity)
	return nil
}

// SetColumn replaces a column in place. The replacement must have Rows
// elements and keeps the old column's name. References previously returned
// for the old column no longer belong to the table.
func (t *Table) SetColumn(ref Ref, col columnar.Column) error {
	i, err := ref.resolve(t)
	if err != nil {
		return err
	}
	if col != nil && col == t.columns[i] {
		return nil
	}
	if err := t.checkIncoming(col); err != nil {
		return err
	}
	if col.Len() != t.rows {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema,
			"column has %d rows, table has %d", col.Len(), t.rows)
	}
	_ = t.owner.Attach(col)
	_ = t.owner.Resize(col, t.capacity)
	t.owner.Detach(t.columns[i])
	t.columns[i] = col
	t.version++
	return nil
}
