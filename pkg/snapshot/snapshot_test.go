package snapshot

import (
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/compression"
	"github.com/ajitpratap0/coltable/pkg/config"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T, rows int) *table.Table {
	t.Helper()
	var (
		i8  []int8
		i16 []int16
		i32 []int32
		i64 []int64
		f32 []float32
		f64 []float64
		ch  []columnar.Char
		fl  []bool
		txt []string
		tag []string
	)
	for i := 0; i < rows; i++ {
		i8 = append(i8, int8(i-64))
		i16 = append(i16, int16(i*-300))
		i32 = append(i32, int32(i*i))
		i64 = append(i64, int64(i)*(math.MaxInt64/int64(rows+1))*int64(1-2*(i%2)))
		f32 = append(f32, float32(i)/3)
		f64 = append(f64, math.Sqrt(float64(i)))
		ch = append(ch, columnar.Char('α'+i%20))
		fl = append(fl, i%3 == 0)
		txt = append(txt, "row-"+strconv.Itoa(i))
		tag = append(tag, []string{"red", "green", "blue"}[i%3])
	}
	tbl, err := table.FromColumns([]columnar.Column{
		columnar.New(i8...), columnar.New(i16...), columnar.New(i32...),
		columnar.New(i64...), columnar.New(f32...), columnar.New(f64...),
		columnar.New(ch...), columnar.New(fl...), columnar.New(txt...), columnar.New(tag...),
	}, []string{"i8", "i16", "i32", "i64", "f32", "f64", "ch", "flag", "txt", "tag"})
	require.NoError(t, err)
	return tbl
}

func TestRoundTripEveryAlgorithm(t *testing.T) {
	tbl := sampleTable(t, 100)
	for _, algo := range compression.Algorithms {
		t.Run(string(algo), func(t *testing.T) {
			data, err := Encode(tbl, Options{Algorithm: algo, Level: compression.Default})
			require.NoError(t, err)
			assert.Equal(t, Magic, string(data[:4]))
			assert.Equal(t, byte(algo.Code()), data[4])

			back, err := Decode(data)
			require.NoError(t, err)
			assert.True(t, tbl.Equal(back))
			assert.Equal(t, back.Rows(), back.Capacity())
			assert.Equal(t, tbl.Schema(), back.Schema())
		})
	}
}

func TestRoundTripEdgeShapes(t *testing.T) {
	empty := table.New()
	zeroRows, err := table.FromSchema(table.Schema{{Name: "a", Kind: columnar.KindText}, {Name: "b", Kind: columnar.KindBool}})
	require.NoError(t, err)
	unnamed, err := table.FromColumns([]columnar.Column{
		columnar.New[int64](math.MinInt64, math.MaxInt64, 0),
		columnar.New[float64](math.Inf(1), math.NaN(), -0.0),
		columnar.New[columnar.Char](-1, 0x10FFFF, 'x'),
	}, nil)
	require.NoError(t, err)

	for name, tbl := range map[string]*table.Table{"empty": empty, "zero rows": zeroRows, "unnamed": unnamed} {
		t.Run(name, func(t *testing.T) {
			data, err := Encode(tbl, DefaultOptions())
			require.NoError(t, err)
			back, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tbl.Schema(), back.Schema())
			assert.Equal(t, tbl.Rows(), back.Rows())
			assert.Equal(t, tbl.HasColumnNames(), back.HasColumnNames())
		})
	}

	data, err := Encode(unnamed, Options{})
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	v, err := table.Get[int64](back, table.Index(0), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v)
	f, err := table.Get[float64](back, table.Index(1), 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))
	c, err := table.Get[columnar.Char](back, table.Index(2), 0)
	require.NoError(t, err)
	assert.Equal(t, columnar.Char(-1), c)
}

func TestTextDictionary(t *testing.T) {
	w := &writer{}
	encodeText(w, []string{"a", "b", "a", "a", "b", "a"})
	assert.Equal(t, textDict, w.buf[0])

	r := &reader{buf: w.buf}
	c := decodeText(r, 6)
	require.NoError(t, r.err)
	assert.Equal(t, []string{"a", "b", "a", "a", "b", "a"}, values[string](c))

	w = &writer{}
	encodeText(w, []string{"a", "b", "c"})
	assert.Equal(t, textPlain, w.buf[0])
}

func TestDecodeRejectsBadInput(t *testing.T) {
	good, err := Encode(sampleTable(t, 10), Options{Algorithm: compression.None})
	require.NoError(t, err)

	tests := map[string][]byte{
		"empty":     nil,
		"bad magic": append([]byte("XXXX"), good[4:]...),
		"bad codec": append(append([]byte(Magic), 99), good[5:]...),
		"truncated": good[:len(good)-3],
		"trailing":  append(append([]byte(nil), good...), 0),
		"bad zstd":  append([]byte(Magic), byte(compression.Zstd.Code()), 1, 2, 3),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			require.Error(t, err)
			assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeData), "%v", err)
		})
	}
}

func TestDecodeRejectsOverflowingInts(t *testing.T) {
	w := &writer{}
	w.uvarint(1)
	w.bool(false)
	w.uvarint(1)
	w.byte(byte(columnar.KindInt8))
	w.varint(300)

	_, err := decodeBody(w.buf, nil)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeData))
}

func TestFromConfigAndFiles(t *testing.T) {
	opts, err := FromConfig(config.SnapshotConfig{Algorithm: "lz4", Level: 9})
	require.NoError(t, err)
	assert.Equal(t, Options{Algorithm: compression.LZ4, Level: compression.Best}, opts)

	_, err = FromConfig(config.SnapshotConfig{Algorithm: "rar"})
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeConfig))

	_, err = Encode(table.New(), Options{Algorithm: "rar"})
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeConfig))

	path := filepath.Join(t.TempDir(), "t.cts")
	tbl := sampleTable(t, 7)
	require.NoError(t, WriteFile(path, tbl, opts))
	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
