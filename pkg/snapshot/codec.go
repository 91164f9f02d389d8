package snapshot

import (
	"encoding/binary"
	"math"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

const (
	textPlain byte = iota
	textDict
)

type writer struct {
	buf []byte
}

func (w *writer) byte(b byte) { w.buf = append(w.buf, b) }
func (w *writer) uvarint(v uint64) { w.buf = binary.AppendUvarint(w.buf, v) }
func (w *writer) varint(v int64) { w.buf = binary.AppendVarint(w.buf, v) }
func (w *writer) uint32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) uint64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }
func (w *writer) string(s string) {
	w.uvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) bool(b bool) {
	if b {
		w.byte(1)
	} else {
		w.byte(0)
	}
}

// reader records the first failure and turns every later read into a no-op.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = tableerrors.Newf(tableerrors.ErrorTypeData, format, args...).WithDetail("offset", r.pos)
	}
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 || len(r.buf)-r.pos < n {
		r.fail("truncated snapshot: need %d bytes", n)
		return false
	}
	return true
}

func (r *reader) byte() byte {
	if !r.need(1) {
		return 0
	}
	b := r.buf[r.pos]
	r.pos++
	return b
}

func (r *reader) bool() bool {
	switch b := r.byte(); b {
	case 0:
		return false
	case 1:
		return true
	default:
		r.fail("invalid bool byte %d", b)
		return false
	}
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		r.fail("invalid uvarint")
		return 0
	}
	r.pos += n
	return v
}

func (r *reader) varint() int64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.buf[r.pos:])
	if n <= 0 {
		r.fail("invalid varint")
		return 0
	}
	r.pos += n
	return v
}

// count reads a length that must fit in the remaining input, which bounds
// allocations made from untrusted sizes.
func (r *reader) count() int {
	v := r.uvarint()
	if r.err == nil && v > uint64(len(r.buf)-r.pos)*8+8 {
		r.fail("count %d exceeds remaining input", v)
		return 0
	}
	return int(v)
}

func (r *reader) uint32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

func (r *reader) uint64() uint64 {
	if !r.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

func (r *reader) string() string {
	n := r.count()
	if !r.need(n) {
		return ""
	}
	s := string(r.buf[r.pos : r.pos+n])
	r.pos += n
	return s
}

type integer interface {
	int8 | int16 | int32 | int64
}

func encodeInts[T integer](w *writer, values []T) {
	var prev int64
	for _, v := range values {
		w.varint(int64(v) - prev)
		prev = int64(v)
	}
}

func decodeInts[T integer](r *reader, rows int) columnar.Column {
	values := make([]T, rows)
	var prev int64
	for i := range values {
		prev += r.varint()
		values[i] = T(prev)
		if int64(values[i]) != prev {
			r.fail("value %d overflows %v", prev, columnar.KindFor[T]())
		}
	}
	return columnar.New(values...)
}

func encodeBools(w *writer, values []bool) {
	for i := 0; i < len(values); i += 8 {
		var b byte
		for k := 0; k < 8 && i+k < len(values); k++ {
			if values[i+k] {
				b |= 1 << k
			}
		}
		w.byte(b)
	}
}

func decodeBools(r *reader, rows int) columnar.Column {
	values := make([]bool, rows)
	for i := 0; i < rows; i += 8 {
		b := r.byte()
		for k := 0; k < 8 && i+k < rows; k++ {
			values[i+k] = b&(1<<k) != 0
		}
	}
	return columnar.New(values...)
}

// encodeText dictionary-codes the column when at most half of its values
// are distinct.
func encodeText(w *writer, values []string) {
	codes := make(map[string]uint64)
	var dict []string
	for _, s := range values {
		if _, ok := codes[s]; !ok {
			codes[s] = uint64(len(dict))
			dict = append(dict, s)
		}
	}
	if len(values) == 0 || len(dict)*2 > len(values) {
		w.byte(textPlain)
		for _, s := range values {
			w.string(s)
		}
		return
	}
	w.byte(textDict)
	w.uvarint(uint64(len(dict)))
	for _, s := range dict {
		w.string(s)
	}
	for _, s := range values {
		w.uvarint(codes[s])
	}
}

func decodeText(r *reader, rows int) columnar.Column {
	values := make([]string, rows)
	switch mode := r.byte(); mode {
	case textPlain:
		for i := range values {
			values[i] = r.string()
		}
	case textDict:
		dict := make([]string, r.count())
		for i := range dict {
			dict[i] = r.string()
		}
		for i := range values {
			code := r.uvarint()
			if r.err != nil {
				break
			}
			if code >= uint64(len(dict)) {
				r.fail("dictionary code %d out of range", code)
				break
			}
			values[i] = dict[code]
		}
	default:
		r.fail("unknown text encoding %d", mode)
	}
	return columnar.New(values...)
}

func values[T columnar.Element](c columnar.Column) []T {
	v, _ := columnar.As[T](c)
	return v.Values()
}

func encodeColumn(w *writer, c columnar.Column) error {
	switch c.Kind() {
	case columnar.KindInt8:
		encodeInts(w, values[int8](c))
	case columnar.KindInt16:
		encodeInts(w, values[int16](c))
	case columnar.KindInt32:
		encodeInts(w, values[int32](c))
	case columnar.KindInt64:
		encodeInts(w, values[int64](c))
	case columnar.KindFloat32:
		for _, f := range values[float32](c) {
			w.uint32(math.Float32bits(f))
		}
	case columnar.KindFloat64:
		for _, f := range values[float64](c) {
			w.uint64(math.Float64bits(f))
		}
	case columnar.KindChar:
		for _, ch := range values[columnar.Char](c) {
			w.varint(int64(ch))
		}
	case columnar.KindBool:
		encodeBools(w, values[bool](c))
	case columnar.KindText:
		encodeText(w, values[string](c))
	default:
		return tableerrors.Newf(tableerrors.ErrorTypeType, "unsupported column kind %v", c.Kind())
	}
	return nil
}

func decodeColumn(r *reader, kind columnar.Kind, rows int) (columnar.Column, error) {
	var c columnar.Column
	switch kind {
	case columnar.KindInt8:
		c = decodeInts[int8](r, rows)
	case columnar.KindInt16:
		c = decodeInts[int16](r, rows)
	case columnar.KindInt32:
		c = decodeInts[int32](r, rows)
	case columnar.KindInt64:
		c = decodeInts[int64](r, rows)
	case columnar.KindFloat32:
		vals := make([]float32, rows)
		for i := range vals {
			vals[i] = math.Float32frombits(r.uint32())
		}
		c = columnar.New(vals...)
	case columnar.KindFloat64:
		vals := make([]float64, rows)
		for i := range vals {
			vals[i] = math.Float64frombits(r.uint64())
		}
		c = columnar.New(vals...)
	case columnar.KindChar:
		vals := make([]columnar.Char, rows)
		for i := range vals {
			cp := r.varint()
			if cp < math.MinInt32 || cp > math.MaxInt32 {
				r.fail("code point %d out of range", cp)
			}
			vals[i] = columnar.Char(cp)
		}
		c = columnar.New(vals...)
	case columnar.KindBool:
		c = decodeBools(r, rows)
	case columnar.KindText:
		c = decodeText(r, rows)
	default:
		r.fail("unknown column kind %d", uint8(kind))
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}
