package table

import (
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	stringpool "github.com/ajitpratap0/coltable/pkg/strings"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// Table is an ordered set of equally long columns.
type Table struct {
	columns  []columnar.Column
	names    []string // nil when the table is unnamed
	index    map[string]int
	rows     int
	capacity int
	version  uint64
	owner    *columnar.Owner

	policy  Policy
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Field describes one column of a schema.
type Field struct {
	Name string
	Kind columnar.Kind
}

// Schema is the ordered list of a table's columns.
type Schema []Field

// Named reports whether the schema carries column names. A schema is named
// when any field has a name; FromSchema then requires all of them to.
func (s Schema) Named() bool {
	for _, f := range s {
		if f.Name != "" {
			return true
		}
	}
	return false
}

// Names returns the field names, or nil for an unnamed schema.
func (s Schema) Names() []string {
	if !s.Named() {
		return nil
	}
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// New creates an empty table with no columns, no rows and no capacity.
func New(opts ...Option) *Table {
	t := &Table{
		owner:  columnar.NewOwner(),
		policy: DefaultPolicy(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.metrics.Observe(0, 0)
	return t
}

// FromColumns builds a table from populated columns. All columns must have
// the same length, which becomes both the row count and the capacity. names
// may be nil for an unnamed table; otherwise it must name every column.
// The table takes ownership of the columns.
func FromColumns(cols []columnar.Column, names []string, opts ...Option) (*Table, error) {
	t := New(opts...)
	if len(cols) == 0 {
		if len(names) != 0 {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeSchema,
				"%d names given for 0 columns", len(names))
		}
		return t, nil
	}

	rows := -1
	seen := make(map[columnar.Column]int, len(cols))
	for i, c := range cols {
		if c == nil {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeValidation, "column %d is nil", i)
		}
		if j, dup := seen[c]; dup {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeValidation,
				"column %d is the same instance as column %d", i, j)
		}
		seen[c] = i
		if columnar.Attached(c) {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeValidation,
				"column %d already belongs to a table", i)
		}
		if rows >= 0 && c.Len() != rows {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeSchema,
				"column %d has %d rows, column 0 has %d", i, c.Len(), rows).
				WithDetail("column", i)
		}
		rows = c.Len()
	}
	if names != nil {
		if err := validateNames(names, len(cols)); err != nil {
			return nil, err
		}
	}

	for _, c := range cols {
		// unattached and distinct, checked above
		_ = t.owner.Attach(c)
		if err := t.owner.Resize(c, rows); err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "resize failed")
		}
	}
	t.columns = append([]columnar.Column(nil), cols...)
	if names != nil {
		t.names = append([]string(nil), names...)
	}
	t.rows = rows
	t.capacity = rows
	t.reindex()
	t.metrics.Observe(t.rows, t.capacity)
	return t, nil
}

// FromSchema creates a table with zero rows and one empty column per field.
func FromSchema(schema Schema, opts ...Option) (*Table, error) {
	cols := make([]columnar.Column, len(schema))
	for i, f := range schema {
		c, err := columnar.Make(f.Kind, 0)
		if err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeSchema,
				stringpool.Sprintf("field %d", i))
		}
		cols[i] = c
	}
	return FromColumns(cols, schema.Names(), opts...)
}

func validateNames(names []string, n int) error {
	if len(names) != n {
		return tableerrors.Newf(tableerrors.ErrorTypeSchema,
			"%d names given for %d columns", len(names), n)
	}
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if name == "" {
			return tableerrors.Newf(tableerrors.ErrorTypeSchema, "column %d has an empty name", i)
		}
		if _, dup := seen[name]; dup {
			return tableerrors.Newf(tableerrors.ErrorTypeSchema, "duplicate column name %q", name).
				WithDetail("column", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (t *Table) reindex() {
	if t.names == nil {
		t.index = nil
		return
	}
	t.index = make(map[string]int, len(t.names))
	for i, name := range t.names {
		t.index[name] = i
	}
}

// Rows returns the logical row count.
func (t *Table) Rows() int { return t.rows }

// Capacity returns the backing capacity shared by every column.
func (t *Table) Capacity() int { return t.capacity }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Version changes whenever columns are added, removed, replaced or renamed.
// Row operations leave it alone.
func (t *Table) Version() uint64 { return t.version }

// Schema returns the names and kinds of the columns.
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.columns))
	for i, c := range t.columns {
		s[i] = Field{Kind: c.Kind()}
		if t.names != nil {
			s[i].Name = t.names[i]
		}
	}
	return s
}

// Logger returns the table's logger.
func (t *Table) Logger() *zap.Logger { return t.logger }

// Policy returns the shrink policy in effect.
func (t *Table) Policy() Policy { return t.policy }

func (t *Table) checkRow(row int) error {
	if row < 0 || row >= t.rows {
		return tableerrors.OutOfRange(row, t.rows)
	}
	return nil
}

func (t *Table) lookup(ref Ref, row int) (columnar.Column, error) {
	i, err := ref.resolve(t)
	if err != nil {
		return nil, err
	}
	if err := t.checkRow(row); err != nil {
		return nil, err
	}
	return t.columns[i], nil
}

// Value returns the element at row in the referenced column.
func (t *Table) Value(col Ref, row int) (interface{}, error) {
	c, err := t.lookup(col, row)
	if err != nil {
		return nil, err
	}
	return c.Value(row)
}

// SetValue overwrites one element. v must have the column's element type.
func (t *Table) SetValue(col Ref, row int, v interface{}) error {
	c, err := t.lookup(col, row)
	if err != nil {
		return err
	}
	return c.SetValue(row, v)
}

// Get returns a typed element. It fails with a type error when the column
// does not hold T.
func Get[T columnar.Element](t *Table, col Ref, row int) (T, error) {
	var zero T
	c, err := t.lookup(col, row)
	if err != nil {
		return zero, err
	}
	v, err := columnar.As[T](c)
	if err != nil {
		return zero, err
	}
	return v.Get(row)
}

// Set overwrites a typed element.
func Set[T columnar.Element](t *Table, col Ref, row int, value T) error {
	c, err := t.lookup(col, row)
	if err != nil {
		return err
	}
	v, err := columnar.As[T](c)
	if err != nil {
		return err
	}
	return v.Set(row, value)
}

// Clone returns a deep copy with the same capacity, names, logger and policy.
// Metrics are not carried over.
func (t *Table) Clone() *Table {
	c := &Table{
		columns:  make([]columnar.Column, len(t.columns)),
		rows:     t.rows,
		capacity: t.capacity,
		version:  t.version,
		owner:    columnar.NewOwner(),
		policy:   t.policy,
		logger:   t.logger,
	}
	for i, col := range t.columns {
		c.columns[i] = col.Clone()
		_ = c.owner.Attach(c.columns[i])
	}
	if t.names != nil {
		c.names = append([]string(nil), t.names...)
	}
	c.reindex()
	return c
}

// Equal reports whether both tables have the same schema and rows.
// Capacity is not compared.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.columns) != len(o.columns) || (t.names == nil) != (o.names == nil) {
		return false
	}
	for i := range t.columns {
		if t.names != nil && t.names[i] != o.names[i] {
			return false
		}
		if !columnar.Equal(t.columns[i], o.columns[i]) {
			return false
		}
	}
	return true
}

// MemoryUsage estimates the bytes held by all column buffers.
func (t *Table) MemoryUsage() int64 {
	var total int64
	for _, c := range t.columns {
		total += c.MemoryUsage()
	}
	return total
}
