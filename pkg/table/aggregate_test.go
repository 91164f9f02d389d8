package table

import (
	"testing"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregates(t *testing.T) {
	tbl, err := FromColumns([]columnar.Column{
		columnar.New[int8](10, 20, 30, 40, 50),
		columnar.New[int16](10, 20, 30, 40, 50),
		columnar.New[int32](10, 20, 30, 40, 50),
		columnar.New[int64](10, 20, 30, 40, 50),
		columnar.New[float32](10, 20, 30, 40, 50),
		columnar.New[float64](10, 20, 30, 40, 50),
		columnar.New("10", "20", "30", "40", "50"),
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		lo, err := tbl.Minimum(Index(i))
		require.NoError(t, err)
		assert.Equal(t, 10.0, lo)

		hi, err := tbl.Maximum(Index(i))
		require.NoError(t, err)
		assert.Equal(t, 50.0, hi)

		avg, err := tbl.Average(Index(i))
		require.NoError(t, err)
		assert.Equal(t, 30.0, avg)

		sum, err := tbl.Sum(Index(i))
		require.NoError(t, err)
		assert.Equal(t, 150.0, sum)
	}

	_, err = tbl.Minimum(Index(6))
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType))
}

func TestAggregateRejectsNonNumeric(t *testing.T) {
	tbl := allKinds(t, 1, 2)
	for _, name := range []string{"ch", "flag", "txt"} {
		for _, agg := range []func(Ref) (float64, error){tbl.Minimum, tbl.Maximum, tbl.Average, tbl.Sum} {
			_, err := agg(Name(name))
			assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeType), name)
		}
	}
}

func TestAggregateWidens(t *testing.T) {
	tbl, err := FromColumns([]columnar.Column{
		columnar.New[int8](-128, 127),
		columnar.New[int64](1<<62, 1<<62),
		columnar.New[float32](0.5, -1.25),
	}, []string{"small", "big", "frac"})
	require.NoError(t, err)

	avg, err := tbl.Average(Name("small"))
	require.NoError(t, err)
	assert.Equal(t, -0.5, avg)

	sum, err := tbl.Sum(Name("big"))
	require.NoError(t, err)
	assert.Equal(t, float64(1<<63), sum)

	lo, err := tbl.Minimum(Name("frac"))
	require.NoError(t, err)
	assert.Equal(t, -1.25, lo)
}

func TestAggregateEmptyAndUnknown(t *testing.T) {
	tbl, err := FromSchema(Schema{{Name: "n", Kind: columnar.KindFloat64}})
	require.NoError(t, err)

	_, err = tbl.Average(Name("n"))
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeOutOfRange))

	_, err = tbl.Maximum(Name("m"))
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeUnknownColumn))
}
