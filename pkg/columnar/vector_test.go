package columnar

import (
	"math"
	"testing"

	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	assert.Equal(t, KindInt8, KindFor[int8]())
	assert.Equal(t, KindInt16, KindFor[int16]())
	assert.Equal(t, KindInt32, KindFor[int32]())
	assert.Equal(t, KindInt64, KindFor[int64]())
	assert.Equal(t, KindFloat32, KindFor[float32]())
	assert.Equal(t, KindFloat64, KindFor[float64]())
	assert.Equal(t, KindChar, KindFor[Char]())
	assert.Equal(t, KindBool, KindFor[bool]())
	assert.Equal(t, KindText, KindFor[string]())
}

func TestKindProperties(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
		assert.True(t, k.Valid())
	}

	assert.True(t, KindInt8.IsNumeric())
	assert.True(t, KindFloat64.IsNumeric())
	assert.False(t, KindChar.IsNumeric())
	assert.False(t, KindBool.IsNumeric())
	assert.False(t, KindText.IsNumeric())
	assert.True(t, KindInt64.IsInteger())
	assert.False(t, KindFloat32.IsInteger())
	assert.False(t, KindInvalid.Valid())

	_, err := ParseKind("decimal")
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeValidation))
}

func TestKindOfKeepsCharAndInt32Apart(t *testing.T) {
	k, ok := KindOf(int32('a'))
	require.True(t, ok)
	assert.Equal(t, KindInt32, k)

	k, ok = KindOf(Char('a'))
	require.True(t, ok)
	assert.Equal(t, KindChar, k)

	_, ok = KindOf(42)
	assert.False(t, ok)
}

func TestVectorGetSet(t *testing.T) {
	v := New[int32](10, 20, 30)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Cap())

	got, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int32(20), got)

	require.NoError(t, v.Set(1, 25))
	got, _ = v.Get(1)
	assert.Equal(t, int32(25), got)

	for _, i := range []int{-1, 3, 100} {
		_, err := v.Get(i)
		assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange), "get %d", i)
		err = v.Set(i, 1)
		assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange), "set %d", i)
	}
	assert.Equal(t, []int32{10, 25, 30}, v.Values())
}

func TestVectorInsertRemove(t *testing.T) {
	v := New[string]("a", "c")

	require.NoError(t, v.InsertAt(1, "b"))
	require.NoError(t, v.InsertAt(0, "_"))
	require.NoError(t, v.InsertAt(4, "d"))
	assert.Equal(t, []string{"_", "a", "b", "c", "d"}, v.Values())

	err := v.InsertAt(6, "x")
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange))

	require.NoError(t, v.RemoveAt(0))
	assert.Equal(t, []string{"a", "b", "c", "d"}, v.Values())

	require.NoError(t, v.RemoveRange(1, 3))
	assert.Equal(t, []string{"a", "d"}, v.Values())

	assert.Error(t, v.RemoveAt(2))
	assert.Error(t, v.RemoveRange(1, 3))
	assert.Error(t, v.RemoveRange(2, 1))
	require.NoError(t, v.RemoveRange(1, 1))
	assert.Equal(t, 2, v.Len())
}

func TestVectorAppendDoublesCapacity(t *testing.T) {
	v := NewWithCapacity[int64](0)
	caps := []int{}
	for i := 0; i < 5; i++ {
		v.Append(int64(i))
		caps = append(caps, v.Cap())
	}
	assert.Equal(t, []int{1, 2, 4, 4, 8}, caps)
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, v.Values())
}

func TestVectorResize(t *testing.T) {
	v := New[float64](1, 2, 3)
	require.NoError(t, v.Resize(10))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, []float64{1, 2, 3}, v.Values())

	require.NoError(t, v.Resize(3))
	assert.Equal(t, 3, v.Cap())

	err := v.Resize(2)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeValidation))
	assert.Equal(t, 3, v.Cap())
}

func TestVectorBoxedAccessChecksType(t *testing.T) {
	var c Column = New[int16](1, 2)

	err := c.SetValue(0, int32(5))
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
	err = c.AppendValue("3")
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
	err = c.InsertValue(0, 7)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.SetValue(0, int16(5)))
	require.NoError(t, c.AppendValue(int16(3)))
	require.NoError(t, c.InsertValue(1, int16(4)))

	got := []interface{}{}
	for i := 0; i < c.Len(); i++ {
		v, err := c.Value(i)
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []interface{}{int16(5), int16(4), int16(2), int16(3)}, got)
	assert.True(t, c.Accepts(int16(0)))
	assert.False(t, c.Accepts(int64(0)))
}

func TestVectorCanonicalText(t *testing.T) {
	tests := []struct {
		name string
		col  Column
		want string
	}{
		{"int8", New[int8](-12), "-12"},
		{"int16", New[int16](300), "300"},
		{"int32", New[int32](70000), "70000"},
		{"int64", New[int64](math.MaxInt64), "9223372036854775807"},
		{"float32", New[float32](2.5), "2.5"},
		{"float64 whole", New[float64](10), "10"},
		{"float64 fraction", New[float64](0.125), "0.125"},
		{"char", New[Char]('λ'), "λ"},
		{"bool", New[bool](true), "true"},
		{"text", New[string]("hello world"), "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.col.String(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
			assert.Equal(t, tt.want, Text(tt.col, 0))
		})
	}

	_, err := New[int8]().String(0)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange))
}

func TestVectorCompare(t *testing.T) {
	tests := []struct {
		name string
		col  Column
	}{
		{"int8", New[int8](1, 2)},
		{"float32", New[float32](-1.5, 0)},
		{"char", New[Char]('a', 'b')},
		{"bool", New[bool](false, true)},
		{"text", New[string]("apple", "banana")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.col.Compare(0, 1)
			require.NoError(t, err)
			assert.Equal(t, -1, c)
			c, _ = tt.col.Compare(1, 0)
			assert.Equal(t, 1, c)
			c, _ = tt.col.Compare(1, 1)
			assert.Equal(t, 0, c)
		})
	}

	_, err := New[int8](1).Compare(0, 1)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange))
}

func TestVectorFloat(t *testing.T) {
	f, err := New[int8](-4).Float(0)
	require.NoError(t, err)
	assert.Equal(t, -4.0, f)

	f, err = New[float32](0.5).Float(0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	for _, c := range []Column{New[Char]('x'), New[bool](true), New[string]("1")} {
		_, err := c.Float(0)
		assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType), c.Kind().String())
	}
}

func TestVectorCloneIsDeep(t *testing.T) {
	v := New[string]("a", "b")
	require.NoError(t, v.Resize(5))

	clone := v.Clone().(*Vector[string])
	require.NoError(t, clone.Set(0, "z"))

	orig, _ := v.Get(0)
	assert.Equal(t, "a", orig)
	assert.Equal(t, 5, clone.Cap())
	assert.Equal(t, 2, clone.Len())
}

func TestVectorPermute(t *testing.T) {
	v := New[int32](40, 10, 30, 20)
	require.NoError(t, v.Resize(8))
	require.NoError(t, v.Permute([]int{1, 3, 2, 0}))
	assert.Equal(t, []int32{10, 20, 30, 40}, v.Values())
	assert.Equal(t, 8, v.Cap())

	assert.Error(t, v.Permute([]int{0, 1}))
	assert.Error(t, v.Permute([]int{0, 0, 1, 2}))
	assert.Error(t, v.Permute([]int{0, 1, 2, 9}))
	assert.Equal(t, []int32{10, 20, 30, 40}, v.Values())
}

func TestVectorSelect(t *testing.T) {
	v := New[bool](true, false, true, false)
	sel, err := v.Select([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, 2, sel.Cap())
	assert.Equal(t, []bool{true, true}, sel.(*Vector[bool]).Values())

	empty, err := v.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, KindBool, empty.Kind())
	assert.Equal(t, 0, empty.Len())

	_, err = v.Select([]int{4})
	assert.Error(t, err)
}

func TestStablePermutation(t *testing.T) {
	keys := New[string]("b", "a", "b", "a", "c")
	assert.Equal(t, []int{1, 3, 0, 2, 4}, StablePermutation(keys))

	flags := New[bool](true, false, true, false)
	assert.Equal(t, []int{1, 3, 0, 2}, StablePermutation(flags))

	assert.Empty(t, StablePermutation(New[int8]()))
}

func TestMake(t *testing.T) {
	for _, k := range Kinds {
		c, err := Make(k, 3)
		require.NoError(t, err)
		assert.Equal(t, k, c.Kind())
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, 3, c.Cap())
	}

	c, err := MakeEmpty(KindText, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 4, c.Cap())

	_, err = Make(KindInvalid, 1)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
	_, err = Make(KindInt8, -1)
	assert.Error(t, err)
}

func TestAs(t *testing.T) {
	var c Column = New[Char]('a')
	v, err := As[Char](c)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Len())

	_, err = As[int32](c)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
}

func TestClearAndMemoryUsage(t *testing.T) {
	v := New[string]("abc", "de")
	assert.Equal(t, int64(2*16+5), v.MemoryUsage())

	v.Clear()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 2, v.Cap())

	assert.Equal(t, int64(8*3), New[int64](1, 2, 3).MemoryUsage())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(New[int8](1, 2), New[int8](1, 2)))
	assert.False(t, Equal(New[int8](1, 2), New[int8](1, 3)))
	assert.False(t, Equal(New[int8](1), New[int16](1)))
	assert.False(t, Equal(New[int8](1), New[int8](1, 1)))
}

func TestOwnerGuardsLengthAndCapacity(t *testing.T) {
	owner := NewOwner()
	v := New[int32](3, 1, 2)
	assert.False(t, Attached(v))
	require.NoError(t, owner.Attach(v))
	assert.True(t, Attached(v))

	err := v.Append(4)
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeSchema))
	assert.Error(t, v.Resize(8))
	assert.Error(t, v.Clear())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Cap())
	require.NoError(t, v.Set(0, 5))

	require.NoError(t, owner.Resize(v, 4))
	require.NoError(t, owner.Append(v, int32(4)))
	require.NoError(t, owner.Insert(v, 0, int32(0)))
	assert.Equal(t, []int32{0, 5, 1, 2, 4}, v.Values())
	require.NoError(t, owner.Permute(v, []int{0, 2, 3, 4, 1}))
	require.NoError(t, owner.RemoveRange(v, 0, 1))
	assert.Equal(t, []int32{1, 2, 4, 5}, v.Values())

	err = owner.Append(v, "x")
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))

	stranger := NewOwner()
	assert.True(t, tableerrors.IsType(stranger.Attach(v), tableerrors.ErrorTypeValidation))
	assert.True(t, tableerrors.IsType(stranger.Append(v, int32(1)), tableerrors.ErrorTypeInternal))
	stranger.Detach(v)
	assert.True(t, Attached(v))

	clone := v.Clone()
	assert.False(t, Attached(clone))
	require.NoError(t, clone.AppendValue(int32(6)))

	require.NoError(t, owner.Clear(v))
	assert.Equal(t, 0, v.Len())
	owner.Detach(v)
	assert.False(t, Attached(v))
	require.NoError(t, v.Append(1))
}
