package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/coltable/internal/csvload"
	"github.com/ajitpratap0/coltable/pkg/arrowconv"
	"github.com/ajitpratap0/coltable/pkg/json"
	"github.com/ajitpratap0/coltable/pkg/snapshot"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Output formats
const (
	formatTable    = "table"
	formatCSV      = "csv"
	formatJSON     = "json"
	formatJSONL    = "jsonl"
	formatSnapshot = "snapshot"
	formatArrow    = "arrow"
)

var formatByExt = map[string]string{
	".csv":   formatCSV,
	".json":  formatJSON,
	".jsonl": formatJSONL,
	".cts":   formatSnapshot,
	".arrow": formatArrow,
}

func formatOf(path string) string {
	return formatByExt[strings.ToLower(filepath.Ext(path))]
}

// loadTable reads path as CSV, a snapshot or an Arrow IPC stream, chosen by
// its extension.
func (a *app) loadTable(path string) (*table.Table, error) {
	opts := a.tableOptions(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	switch formatOf(path) {
	case formatCSV:
		return csvload.LoadFile(path, csvload.Options{Header: true, Logger: a.log, TableOptions: opts})
	case formatSnapshot:
		return snapshot.ReadFile(path, opts...)
	case formatArrow:
		return readArrow(path, opts)
	default:
		return nil, tableerrors.Newf(tableerrors.ErrorTypeValidation,
			"cannot read %s: use a .csv, .cts or .arrow file", path)
	}
}

func readArrow(path string, opts []table.Option) (*table.Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "open arrow stream")
	}
	defer f.Close()

	rdr, err := ipc.NewReader(bufio.NewReader(f))
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "read arrow stream")
	}
	defer rdr.Release()

	var t *table.Table
	for rdr.Next() {
		batch, err := arrowconv.FromRecord(rdr.Record(), opts...)
		if err != nil {
			return nil, err
		}
		if t == nil {
			t = batch
			continue
		}
		if err := t.Reserve(t.Rows() + batch.Rows()); err != nil {
			return nil, err
		}
		for i := 0; i < batch.Rows(); i++ {
			row, _ := batch.Row(i)
			if err := t.AddRow(row...); err != nil {
				return nil, err
			}
		}
	}
	if err := rdr.Err(); err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "read arrow stream")
	}
	if t == nil {
		return table.FromSchema(nil, opts...)
	}
	return t, nil
}

// writeTable renders t to out, or to the file at path when path is set.
// An empty format is taken from the path's extension, then defaults to a
// text table.
func (a *app) writeTable(out io.Writer, path, format string, t *table.Table, limit int) error {
	if format == "" {
		format = formatOf(path)
	}
	if format == "" {
		format = formatTable
	}
	if path != "" {
		f, err := os.Create(path) //nolint:gosec // G304: path is supplied by the caller
		if err != nil {
			return tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "create output")
		}
		defer f.Close()
		out = f
	}

	switch format {
	case formatTable:
		_, err := io.WriteString(out, t.Format(limit)+"\n")
		return err
	case formatCSV:
		return csvload.Write(out, t, true)
	case formatJSON:
		return json.WriteRows(out, t, json.FormatArray)
	case formatJSONL:
		return json.WriteRows(out, t, json.FormatLines)
	case formatSnapshot:
		opts, err := a.snapshotOptions()
		if err != nil {
			return err
		}
		data, err := snapshot.Encode(t, opts)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case formatArrow:
		return writeArrow(out, t)
	default:
		return tableerrors.Newf(tableerrors.ErrorTypeValidation, "unknown output format %q", format)
	}
}

func writeArrow(out io.Writer, t *table.Table) error {
	mem := memory.NewGoAllocator()
	rec, err := arrowconv.ToRecord(t, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	w := ipc.NewWriter(out, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "write arrow stream")
	}
	return w.Close()
}
