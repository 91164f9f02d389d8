package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `name,age,score
ann,31,1.5
bob,26,2
cy,45,3.25
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte(peopleCSV), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runStreams(t, args...)
	return out, err
}

func runStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "coltable v"+version)
}

func TestInfo(t *testing.T) {
	out, err := run(t, "info", writeCSV(t))
	require.NoError(t, err)
	assert.Contains(t, out, "rows: 3")
	assert.Contains(t, out, "capacity: 3")
	assert.Contains(t, out, "age     int64")

	out, err = run(t, "info", "--json", writeCSV(t))
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "float64"`)
}

func TestMetricsOutput(t *testing.T) {
	_, errOut, err := runStreams(t, "info", writeCSV(t))
	require.NoError(t, err)
	assert.NotContains(t, errOut, "coltable_table_rows")

	_, errOut, err = runStreams(t, "--metrics", "info", writeCSV(t))
	require.NoError(t, err)
	assert.Contains(t, errOut, "coltable_table_rows")

	cfg := filepath.Join(t.TempDir(), "coltable.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("metrics:\n  enabled: true\n"), 0o600))
	_, errOut, err = runStreams(t, "--config", cfg, "info", writeCSV(t))
	require.NoError(t, err)
	assert.Contains(t, errOut, "coltable_table_rows")
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--column", "age", "--format", "csv", writeCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "column,min,max,sum,avg\nage,26,45,102,34\n", out)

	_, err = run(t, "stats", "--column", "name", writeCSV(t))
	assert.Error(t, err)
}

func TestSortAndFilter(t *testing.T) {
	out, err := run(t, "sort", "--by", "age", "--format", "csv", writeCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "name,age,score\nbob,26,2\nann,31,1.5\ncy,45,3.25\n", out)

	out, err = run(t, "filter", "--column", "#0", "--pattern", "[ab].*", "--format", "jsonl", writeCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"ann\",\"age\":31,\"score\":1.5}\n{\"name\":\"bob\",\"age\":26,\"score\":2}\n", out)

	_, err = run(t, "filter", "--column", "name", "--pattern", "(", writeCSV(t))
	assert.Error(t, err)
}

func TestConvertRoundTrips(t *testing.T) {
	src := writeCSV(t)
	dir := t.TempDir()
	for _, name := range []string{"people.cts", "people.arrow"} {
		dst := filepath.Join(dir, name)
		_, err := run(t, "convert", src, dst)
		require.NoError(t, err)

		out, err := run(t, "sort", "--by", "score", "--format", "csv", dst)
		require.NoError(t, err)
		assert.Equal(t, "name,age,score\nann,31,1.5\nbob,26,2\ncy,45,3.25\n", out, name)
	}

	_, err := run(t, "info", filepath.Join(dir, "people.txt"))
	assert.Error(t, err)
}
