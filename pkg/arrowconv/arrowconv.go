// Package arrowconv moves tables in and out of Apache Arrow records.
//
// Each column maps to the Arrow primitive of the same width. Arrow has no
// character type, so char columns travel as Int32 fields tagged with the
// field metadata coltable.kind=char. Arrow fields always carry a name; an
// unnamed table exports positional names ("#0", "#1", ...) and marks the
// schema with coltable.named=false so that FromRecord drops them again.
package arrowconv

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Metadata keys written on exported schemas.
const (
	KindKey  = "coltable.kind"
	NamedKey = "coltable.named"
)

func dataType(k columnar.Kind) (arrow.DataType, error) {
	switch k {
	case columnar.KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case columnar.KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case columnar.KindInt32, columnar.KindChar:
		return arrow.PrimitiveTypes.Int32, nil
	case columnar.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case columnar.KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case columnar.KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case columnar.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case columnar.KindText:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", k)
	}
}

// ArrowSchema converts a table schema. Unnamed schemas get positional names.
func ArrowSchema(schema table.Schema) (*arrow.Schema, error) {
	named := schema.Named()
	fields := make([]arrow.Field, 0, len(schema))
	for i, f := range schema {
		dt, err := dataType(f.Kind)
		if err != nil {
			return nil, err
		}
		field := arrow.Field{Name: f.Name, Type: dt}
		if !named {
			field.Name = "#" + strconv.Itoa(i)
		}
		if f.Kind == columnar.KindChar {
			field.Metadata = arrow.NewMetadata([]string{KindKey}, []string{columnar.KindChar.String()})
		}
		fields = append(fields, field)
	}
	if named || len(schema) == 0 {
		return arrow.NewSchema(fields, nil), nil
	}
	md := arrow.NewMetadata([]string{NamedKey}, []string{"false"})
	return arrow.NewSchema(fields, &md), nil
}

// TableSchema converts an Arrow schema back into column names and kinds.
func TableSchema(schema *arrow.Schema) (table.Schema, error) {
	named := lookup(schema.Metadata(), NamedKey) != "false"
	out := make(table.Schema, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		kind, err := kindOf(f)
		if err != nil {
			return nil, err
		}
		field := table.Field{Kind: kind}
		if named {
			field.Name = f.Name
		}
		out = append(out, field)
	}
	return out, nil
}

func lookup(md arrow.Metadata, key string) string {
	if i := md.FindKey(key); i >= 0 {
		return md.Values()[i]
	}
	return ""
}

func kindOf(f arrow.Field) (columnar.Kind, error) {
	switch f.Type.ID() {
	case arrow.INT8:
		return columnar.KindInt8, nil
	case arrow.INT16:
		return columnar.KindInt16, nil
	case arrow.INT32:
		if lookup(f.Metadata, KindKey) == columnar.KindChar.String() {
			return columnar.KindChar, nil
		}
		return columnar.KindInt32, nil
	case arrow.INT64:
		return columnar.KindInt64, nil
	case arrow.FLOAT32:
		return columnar.KindFloat32, nil
	case arrow.FLOAT64:
		return columnar.KindFloat64, nil
	case arrow.BOOL:
		return columnar.KindBool, nil
	case arrow.STRING:
		return columnar.KindText, nil
	default:
		return columnar.KindInvalid, tableerrors.Newf(tableerrors.ErrorTypeType,
			"arrow type %s is not supported", f.Type).WithDetail("field", f.Name)
	}
}

// ToRecord copies every row of t into a new Arrow record allocated from mem
// (memory.DefaultAllocator when nil). The caller must Release the record.
func ToRecord(t *table.Table, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	schema, err := ArrowSchema(t.Schema())
	if err != nil {
		return nil, err
	}

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i := 0; i < t.ColumnCount(); i++ {
		col, err := t.ColumnAt(i)
		if err != nil {
			return nil, err
		}
		if err := appendColumn(b.Field(i), col); err != nil {
			return nil, err
		}
	}
	return b.NewRecord(), nil
}

func values[T columnar.Element](c columnar.Column) []T {
	v, _ := columnar.As[T](c)
	return v.Values()
}

func appendColumn(b array.Builder, c columnar.Column) error {
	switch c.Kind() {
	case columnar.KindInt8:
		b.(*array.Int8Builder).AppendValues(values[int8](c), nil)
	case columnar.KindInt16:
		b.(*array.Int16Builder).AppendValues(values[int16](c), nil)
	case columnar.KindInt32:
		b.(*array.Int32Builder).AppendValues(values[int32](c), nil)
	case columnar.KindInt64:
		b.(*array.Int64Builder).AppendValues(values[int64](c), nil)
	case columnar.KindFloat32:
		b.(*array.Float32Builder).AppendValues(values[float32](c), nil)
	case columnar.KindFloat64:
		b.(*array.Float64Builder).AppendValues(values[float64](c), nil)
	case columnar.KindChar:
		chars := values[columnar.Char](c)
		ib := b.(*array.Int32Builder)
		ib.Reserve(len(chars))
		for _, ch := range chars {
			ib.UnsafeAppend(int32(ch))
		}
	case columnar.KindBool:
		b.(*array.BooleanBuilder).AppendValues(values[bool](c), nil)
	case columnar.KindText:
		b.(*array.StringBuilder).AppendValues(values[string](c), nil)
	default:
		return tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", c.Kind())
	}
	return nil
}

// FromRecord copies rec into a new table with capacity equal to its row
// count. Records holding nulls or unsupported types are rejected.
func FromRecord(rec arrow.Record, opts ...table.Option) (*table.Table, error) {
	schema, err := TableSchema(rec.Schema())
	if err != nil {
		return nil, err
	}

	cols := make([]columnar.Column, 0, len(schema))
	for i, f := range schema {
		arr := rec.Column(i)
		if arr.NullN() > 0 {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeData,
				"column %d holds %d nulls", i, arr.NullN()).WithDetail("field", rec.Schema().Field(i).Name)
		}
		col, err := importArray(arr, f.Kind)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return table.FromColumns(cols, schema.Names(), opts...)
}

func importArray(arr arrow.Array, kind columnar.Kind) (columnar.Column, error) {
	switch kind {
	case columnar.KindInt8:
		return columnar.New(arr.(*array.Int8).Int8Values()...), nil
	case columnar.KindInt16:
		return columnar.New(arr.(*array.Int16).Int16Values()...), nil
	case columnar.KindInt32:
		return columnar.New(arr.(*array.Int32).Int32Values()...), nil
	case columnar.KindInt64:
		return columnar.New(arr.(*array.Int64).Int64Values()...), nil
	case columnar.KindFloat32:
		return columnar.New(arr.(*array.Float32).Float32Values()...), nil
	case columnar.KindFloat64:
		return columnar.New(arr.(*array.Float64).Float64Values()...), nil
	case columnar.KindChar:
		raw := arr.(*array.Int32).Int32Values()
		chars := make([]columnar.Char, len(raw))
		for i, v := range raw {
			chars[i] = columnar.Char(v)
		}
		return columnar.New(chars...), nil
	case columnar.KindBool:
		a := arr.(*array.Boolean)
		out := make([]bool, a.Len())
		for i := range out {
			out[i] = a.Value(i)
		}
		return columnar.New(out...), nil
	case columnar.KindText:
		a := arr.(*array.String)
		out := make([]string, a.Len())
		for i := range out {
			out[i] = strings.Clone(a.Value(i))
		}
		return columnar.New(out...), nil
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", kind)
	}
}
