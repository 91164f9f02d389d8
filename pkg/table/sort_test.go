package table

import (
	"testing"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByEveryKind(t *testing.T) {
	for _, name := range allKindNames {
		if name == "flag" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			tbl := allKinds(t, 4, 2, 1, 5, 3)
			require.NoError(t, tbl.SortBy(Name(name)))

			assert.True(t, allKinds(t, 1, 2, 3, 4, 5).Equal(tbl))
			checkLockstep(t, tbl)
		})
	}
}

func TestSortByBoolIsStable(t *testing.T) {
	tbl := allKinds(t, 4, 2, 1, 5, 3)
	require.NoError(t, tbl.SortBy(Name("flag")))

	assert.Equal(t, []bool{false, false, true, true, true}, column[bool](t, tbl, Name("flag")))
	assert.Equal(t, []int8{2, 1, 4, 5, 3}, column[int8](t, tbl, Name("i8")))
	assert.True(t, allKinds(t, 2, 1, 4, 5, 3).Equal(tbl))
}

func TestSortIsIdempotent(t *testing.T) {
	tbl, err := FromColumns([]columnar.Column{
		columnar.New("b", "a", "b", "a", "c", "a"),
		columnar.New[int32](0, 1, 2, 3, 4, 5),
	}, []string{"key", "seq"})
	require.NoError(t, err)

	require.NoError(t, tbl.SortBy(Name("key")))
	assert.Equal(t, []int32{1, 3, 5, 0, 2, 4}, column[int32](t, tbl, Name("seq")))

	once := tbl.Clone()
	require.NoError(t, tbl.SortBy(Name("key")))
	assert.True(t, once.Equal(tbl))
}

func TestSortKeepsCapacity(t *testing.T) {
	tbl := int32Table(t, 3, 1, 2)
	require.NoError(t, tbl.Reserve(12))
	require.NoError(t, tbl.SortBy(Index(0)))
	assert.Equal(t, 12, tbl.Capacity())
	assert.Equal(t, []int32{1, 2, 3}, column[int32](t, tbl, Index(0)))

	assert.True(t, tableerrors.IsType(tbl.SortBy(Name("x")), tableerrors.ErrorTypeUnknownColumn))
	assert.True(t, tableerrors.IsType(New().SortBy(Index(0)), tableerrors.ErrorTypeOutOfRange))
}
