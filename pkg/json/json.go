// Package json encodes table rows as JSON and decodes JSON rows into an
// existing table, using goccy/go-json.
//
// Named tables encode each row as an object whose keys follow column order;
// unnamed tables encode rows as arrays. Chars travel as one-character
// strings. Decoding checks every value against its column kind, including
// integer and float32 range, before the first row is appended.
package json

import (
	"bytes"
	"io"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	gojson "github.com/goccy/go-json"
)

// Format selects how MarshalRows lays out rows.
type Format string

const (
	// FormatArray writes a single JSON array of rows.
	FormatArray Format = "array"
	// FormatLines writes one row per line.
	FormatLines Format = "lines"
)

// ParseFormat accepts "array", "lines" and "jsonl".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "array", "":
		return FormatArray, nil
	case "lines", "jsonl":
		return FormatLines, nil
	default:
		return "", tableerrors.Newf(tableerrors.ErrorTypeValidation, "unknown json format %q", s)
	}
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a pooled bytes.Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 1024*1024 { // Don't pool very large buffers
		return
	}
	bufferPool.Put(buf)
}

// MarshalIndent is a thin wrapper over the goccy encoder.
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

// MarshalRows encodes every row of t as a JSON array.
func MarshalRows(t *table.Table) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)
	if err := WriteRows(buf, t, FormatArray); err != nil {
		return nil, err
	}
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// WriteRows streams the rows of t to w in the given format.
func WriteRows(w io.Writer, t *table.Table, format Format) error {
	var (
		names = t.ColumnNames()
		buf   = GetBuffer()
		row   []byte
		err   error
	)
	defer PutBuffer(buf)

	if format == FormatArray {
		buf.WriteByte('[')
	}
	for i := 0; i < t.Rows(); i++ {
		if i > 0 && format == FormatArray {
			buf.WriteByte(',')
		}
		if row, err = appendRow(row[:0], t, names, i); err != nil {
			return err
		}
		buf.Write(row)
		if format == FormatLines {
			buf.WriteByte('\n')
		}
		if buf.Len() >= 64*1024 {
			if _, err := w.Write(buf.Bytes()); err != nil {
				return err
			}
			buf.Reset()
		}
	}
	if format == FormatArray {
		buf.WriteByte(']')
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func appendRow(dst []byte, t *table.Table, names []string, i int) ([]byte, error) {
	values, err := t.Row(i)
	if err != nil {
		return nil, err
	}
	start, end := byte('['), byte(']')
	if names != nil {
		start, end = '{', '}'
	}
	dst = append(dst, start)
	for k, v := range values {
		if k > 0 {
			dst = append(dst, ',')
		}
		if names != nil {
			key, _ := gojson.Marshal(names[k])
			dst = append(append(dst, key...), ':')
		}
		if ch, ok := v.(columnar.Char); ok {
			v = ch.String()
		}
		data, err := gojson.Marshal(v)
		if err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "encode value").
				WithDetail("row", i).WithDetail("column", k)
		}
		dst = append(dst, data...)
	}
	return append(dst, end), nil
}

// AppendRows decodes a JSON array of rows and appends them to t. Rows are
// objects keyed by column name (named tables only) or arrays in column
// order. Either every row is appended or, on error, none is. It returns the
// number of rows appended.
func AppendRows(t *table.Table, data []byte) (int, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return 0, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "decode json rows")
	}
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		return 0, tableerrors.New(tableerrors.ErrorTypeData, "trailing data after json rows")
	}

	schema := t.Schema()
	if len(schema) == 0 && len(raw) > 0 {
		return 0, tableerrors.New(tableerrors.ErrorTypeSchema, "table has no columns")
	}
	rows := make([][]interface{}, len(raw))
	for i, r := range raw {
		row, err := convertRow(schema, r)
		if err != nil {
			return 0, tableerrors.Wrap(err, tableerrors.TypeOf(err), "invalid json row").WithDetail("row", i)
		}
		rows[i] = row
	}

	if err := t.Reserve(t.Rows() + len(rows)); err != nil {
		return 0, err
	}
	start := t.Rows()
	for _, row := range rows {
		if err := t.AddRow(row...); err != nil {
			_ = t.RemoveRows(start, t.Rows())
			return 0, err
		}
	}
	return len(rows), nil
}

func convertRow(schema table.Schema, raw interface{}) ([]interface{}, error) {
	var cells []interface{}
	switch r := raw.(type) {
	case []interface{}:
		if len(r) != len(schema) {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeSchema,
				"row has %d values, table has %d columns", len(r), len(schema))
		}
		cells = r
	case map[string]interface{}:
		if !schema.Named() {
			return nil, tableerrors.New(tableerrors.ErrorTypeSchema, "object rows need named columns")
		}
		if len(r) != len(schema) {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeSchema,
				"row has %d fields, table has %d columns", len(r), len(schema))
		}
		cells = make([]interface{}, len(schema))
		for k, f := range schema {
			v, ok := r[f.Name]
			if !ok {
				return nil, tableerrors.UnknownColumn(f.Name)
			}
			cells[k] = v
		}
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeSchema, "row must be an array or object, got %T", raw)
	}

	out := make([]interface{}, len(cells))
	for k, cell := range cells {
		v, err := convertValue(schema[k].Kind, cell)
		if err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.TypeOf(err), "bad value").WithDetail("column", k)
		}
		out[k] = v
	}
	return out, nil
}

func convertValue(kind columnar.Kind, cell interface{}) (interface{}, error) {
	switch kind {
	case columnar.KindInt8, columnar.KindInt16, columnar.KindInt32, columnar.KindInt64:
		n, ok := cell.(gojson.Number)
		if !ok {
			return nil, mismatch(kind, cell)
		}
		v, err := strconv.ParseInt(n.String(), 10, intBits(kind))
		if err != nil {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "%s is not a valid %v", n, kind)
		}
		switch kind {
		case columnar.KindInt8:
			return int8(v), nil
		case columnar.KindInt16:
			return int16(v), nil
		case columnar.KindInt32:
			return int32(v), nil
		default:
			return v, nil
		}
	case columnar.KindFloat32, columnar.KindFloat64:
		n, ok := cell.(gojson.Number)
		if !ok {
			return nil, mismatch(kind, cell)
		}
		bits := 64
		if kind == columnar.KindFloat32 {
			bits = 32
		}
		v, err := strconv.ParseFloat(n.String(), bits)
		if err != nil {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "%s is not a valid %v", n, kind)
		}
		if bits == 32 {
			return float32(v), nil
		}
		return v, nil
	case columnar.KindChar:
		s, ok := cell.(string)
		if !ok || utf8.RuneCountInString(s) != 1 {
			return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "%v is not a single character", cell)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return columnar.Char(r), nil
	case columnar.KindBool:
		b, ok := cell.(bool)
		if !ok {
			return nil, mismatch(kind, cell)
		}
		return b, nil
	case columnar.KindText:
		s, ok := cell.(string)
		if !ok {
			return nil, mismatch(kind, cell)
		}
		return s, nil
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", kind)
	}
}

func intBits(kind columnar.Kind) int {
	switch kind {
	case columnar.KindInt8:
		return 8
	case columnar.KindInt16:
		return 16
	case columnar.KindInt32:
		return 32
	default:
		return 64
	}
}

func mismatch(kind columnar.Kind, cell interface{}) error {
	got := "null"
	switch cell.(type) {
	case gojson.Number:
		got = "number"
	case string:
		got = "string"
	case bool:
		got = "bool"
	case []interface{}:
		got = "array"
	case map[string]interface{}:
		got = "object"
	}
	return tableerrors.TypeMismatch(kind, got)
}
