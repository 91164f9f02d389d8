// Package csvload reads CSV data into tables with inferred column kinds and
// writes tables back out as CSV.
package csvload

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/ajitpratap0/coltable/internal/inference"
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// Options controls how CSV input is interpreted.
type Options struct {
	// Header treats the first record as column names.
	Header bool
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// Engine infers column kinds; nil uses inference.NewEngine(Logger).
	Engine *inference.Engine
	Logger *zap.Logger
	// TableOptions are passed to the created table.
	TableOptions []table.Option
}

// DefaultOptions reads a comma separated file with a header row.
func DefaultOptions() Options {
	return Options{Header: true}
}

// Load reads all of r and converts each CSV column to the kind inferred from
// its cells. The resulting table has capacity equal to its row count.
func Load(r io.Reader, opts Options) (*table.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = inference.NewEngine(logger)
	}

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.ReuseRecord = true

	var (
		headers []string
		cells   [][]string
		rows    int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "read csv")
		}
		if opts.Header && headers == nil {
			headers = append([]string(nil), record...)
			cells = make([][]string, len(record))
			continue
		}
		if cells == nil {
			cells = make([][]string, len(record))
		}
		// Direct append to columns - no intermediate rows
		for i, value := range record {
			cells[i] = append(cells[i], value)
		}
		rows++
	}

	cols := make([]columnar.Column, len(cells))
	for i, values := range cells {
		field := columnLabel(headers, i)
		inferred := engine.Infer(field, values)
		col, err := convert(inferred.Kind, values)
		if err != nil {
			logger.Warn("falling back to text column",
				zap.String("field", field),
				zap.String("inferred", inferred.Kind.String()),
				zap.Error(err))
			col = columnar.New(values...)
		}
		cols[i] = col
	}

	t, err := table.FromColumns(cols, headers, opts.TableOptions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("csv loaded",
		zap.Int("rows", rows),
		zap.Int("columns", len(cols)),
		zap.Bool("named", headers != nil))
	return t, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts Options) (*table.Table, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "open csv")
	}
	defer f.Close()
	return Load(f, opts)
}

func columnLabel(headers []string, i int) string {
	if i < len(headers) {
		return headers[i]
	}
	return "#" + strconv.Itoa(i)
}

// convert parses every cell as kind. Text columns are taken verbatim.
func convert(kind columnar.Kind, values []string) (columnar.Column, error) {
	if kind == columnar.KindText {
		return columnar.New(values...), nil
	}
	col, err := columnar.MakeEmpty(kind, len(values))
	if err != nil {
		return nil, err
	}
	for _, s := range values {
		v, err := inference.Parse(kind, s)
		if err != nil {
			return nil, err
		}
		if err := col.AppendValue(v); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// Write emits t as CSV. A header row with the column names is written when
// header is set and the table is named.
func Write(w io.Writer, t *table.Table, header bool) error {
	writer := csv.NewWriter(w)
	if header && t.HasColumnNames() {
		if err := writer.Write(t.ColumnNames()); err != nil {
			return err
		}
	}
	cols := make([]columnar.Column, t.ColumnCount())
	for i := range cols {
		c, err := t.ColumnAt(i)
		if err != nil {
			return err
		}
		cols[i] = c
	}
	record := make([]string, len(cols))
	for row := 0; row < t.Rows(); row++ {
		for i, c := range cols {
			record[i] = columnar.Text(c, row)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
