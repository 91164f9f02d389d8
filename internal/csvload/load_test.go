package csvload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajitpratap0/coltable/internal/inference"
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const people = `name,age,score,grade,active
ann,31,1.5,A,true
bob,27,2,B,false
cy,45,3.25,A,TRUE
`

func TestLoadInfersKinds(t *testing.T) {
	tbl, err := Load(strings.NewReader(people), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, 3, tbl.Capacity())
	assert.Equal(t, table.Schema{
		{Name: "name", Kind: columnar.KindText},
		{Name: "age", Kind: columnar.KindInt64},
		{Name: "score", Kind: columnar.KindFloat64},
		{Name: "grade", Kind: columnar.KindChar},
		{Name: "active", Kind: columnar.KindBool},
	}, tbl.Schema())

	age, err := table.Get[int64](tbl, table.Name("age"), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(45), age)
	active, err := table.Get[bool](tbl, table.Name("active"), 2)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestLoadWithoutHeader(t *testing.T) {
	tbl, err := Load(strings.NewReader("1;x\n2;y\n"), Options{Comma: ';'})
	require.NoError(t, err)
	assert.False(t, tbl.HasColumnNames())
	assert.Equal(t, table.Schema{{Kind: columnar.KindInt64}, {Kind: columnar.KindChar}}, tbl.Schema())
}

func TestLoadEdgeInputs(t *testing.T) {
	tbl, err := Load(strings.NewReader(""), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.ColumnCount())

	tbl, err = Load(strings.NewReader("a,b\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
	assert.Equal(t, 0, tbl.Rows())

	_, err = Load(strings.NewReader("a,b\n1,2,3\n"), DefaultOptions())
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeData))

	_, err = Load(strings.NewReader("a,a\n1,2\n"), DefaultOptions())
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeSchema))
}

func TestLoadFallsBackToText(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	opts := Options{
		Header: true,
		Engine: inference.NewEngine(nil, inference.WithSampleSize(2)),
		Logger: zap.New(core),
	}
	tbl, err := Load(strings.NewReader("n\n1\n2\nthree\n"), opts)
	require.NoError(t, err)

	assert.Equal(t, table.Schema{{Name: "n", Kind: columnar.KindText}}, tbl.Schema())
	assert.Equal(t, 1, logs.FilterMessage("falling back to text column").Len())
}

func TestWriteRoundTrip(t *testing.T) {
	tbl, err := Load(strings.NewReader(people), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, true))
	assert.Equal(t, `name,age,score,grade,active
ann,31,1.5,A,true
bob,27,2,B,false
cy,45,3.25,A,true
`, buf.String())

	back, err := Load(&buf, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, tbl.Equal(back))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(people), 0o600))

	tbl, err := LoadFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.ColumnCount())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	assert.True(t, tableerrors.IsType(err, tableerrors.ErrorTypeData))
}
