package table

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/stretchr/testify/require"
)

var allKindNames = []string{"i8", "i16", "i32", "i64", "f32", "f64", "ch", "flag", "txt"}

// allKinds builds a named table with one column per kind, each derived from
// the same integers.
func allKinds(t *testing.T, values ...int) *Table {
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
	)
	for _, v := range values {
		i8 = append(i8, int8(v))
		i16 = append(i16, int16(v*100))
		i32 = append(i32, int32(v*10000))
		i64 = append(i64, int64(v)*1e10)
		f32 = append(f32, float32(v)+0.5)
		f64 = append(f64, float64(v)/4)
		ch = append(ch, columnar.Char('a'+v))
		fl = append(fl, v > 2)
		txt = append(txt, "row"+strconv.Itoa(v))
	}
	tbl, err := FromColumns([]columnar.Column{
		columnar.New(i8...), columnar.New(i16...), columnar.New(i32...),
		columnar.New(i64...), columnar.New(f32...), columnar.New(f64...),
		columnar.New(ch...), columnar.New(fl...), columnar.New(txt...),
	}, allKindNames)
	require.NoError(t, err)
	return tbl
}

func int32Table(t *testing.T, values ...int32) *Table {
	t.Helper()
	tbl, err := FromColumns([]columnar.Column{columnar.New(values...)}, []string{"n"})
	require.NoError(t, err)
	return tbl
}

func column[T columnar.Element](t *testing.T, tbl *Table, ref Ref) []T {
	t.Helper()
	c, err := tbl.Column(ref)
	require.NoError(t, err)
	v, err := columnar.As[T](c)
	require.NoError(t, err)
	return v.Values()
}

// checkLockstep asserts every column has Rows elements and Capacity slots.
func checkLockstep(t *testing.T, tbl *Table) {
	t.Helper()
	for i := 0; i < tbl.ColumnCount(); i++ {
		c, err := tbl.ColumnAt(i)
		require.NoError(t, err)
		require.Equal(t, tbl.Rows(), c.Len(), "column %d length", i)
		require.Equal(t, tbl.Capacity(), c.Cap(), "column %d capacity", i)
	}
	require.LessOrEqual(t, tbl.Rows(), tbl.Capacity())
}

func regexpQuote(s string) string {
	return regexp.QuoteMeta(s)
}
