// Package snapshot encodes a table into a compact, compressed byte blob and
// back.
//
// # Format
//
//	magic "CTS1" | algorithm code (1 byte) | compressed body
//
// The body holds the row count, a named flag, the column count and then,
// per column, its kind, its name (named tables only) and its values:
//   - integers as zigzag varints of the delta from the previous value
//   - floats as little-endian IEEE 754 bits
//   - chars as zigzag varint code points
//   - booleans bit-packed, eight per byte
//   - text length-prefixed, or dictionary coded when values repeat
//
// A decoded table has capacity equal to its row count.
package snapshot

import (
	"bytes"
	"os"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/compression"
	"github.com/ajitpratap0/coltable/pkg/config"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Magic prefixes every snapshot.
const Magic = "CTS1"

// Options selects the compression of an encoded snapshot.
type Options struct {
	Algorithm compression.Algorithm
	Level     compression.Level
}

// DefaultOptions uses zstd at the default level.
func DefaultOptions() Options {
	return Options{Algorithm: compression.Zstd, Level: compression.Default}
}

// FromConfig converts the snapshot section of a configuration.
func FromConfig(cfg config.SnapshotConfig) (Options, error) {
	algo, err := compression.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return Options{}, err
	}
	return Options{Algorithm: algo, Level: compression.Level(cfg.Level)}, nil
}

// Encode serializes every row and column of t.
func Encode(t *table.Table, opts Options) ([]byte, error) {
	if opts.Algorithm == "" {
		opts = DefaultOptions()
	}
	code := opts.Algorithm.Code()
	if code < 0 {
		return nil, tableerrors.Newf(tableerrors.ErrorTypeConfig,
			"unsupported compression algorithm: %s", opts.Algorithm)
	}
	comp, err := compression.NewCompressor(&compression.Config{Algorithm: opts.Algorithm, Level: opts.Level})
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(t)
	if err != nil {
		return nil, err
	}
	compressed, err := comp.Compress(body)
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "compress snapshot")
	}

	out := make([]byte, 0, len(Magic)+1+len(compressed))
	out = append(out, Magic...)
	out = append(out, byte(code))
	return append(out, compressed...), nil
}

// Decode rebuilds a table from data produced by Encode.
func Decode(data []byte, opts ...table.Option) (*table.Table, error) {
	if len(data) < len(Magic)+1 || !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return nil, tableerrors.New(tableerrors.ErrorTypeData, "not a coltable snapshot")
	}
	algo, err := compression.AlgorithmForCode(data[len(Magic)])
	if err != nil {
		return nil, err
	}
	comp, err := compression.NewCompressor(&compression.Config{Algorithm: algo})
	if err != nil {
		return nil, err
	}
	body, err := comp.Decompress(data[len(Magic)+1:])
	if err != nil {
		return nil, err
	}
	return decodeBody(body, opts)
}

// WriteFile encodes t into path.
func WriteFile(path string, t *table.Table, opts Options) error {
	data, err := Encode(t, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "write snapshot")
	}
	return nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string, opts ...table.Option) (*table.Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeInternal, "read snapshot")
	}
	return Decode(data, opts...)
}

func encodeBody(t *table.Table) ([]byte, error) {
	w := &writer{}
	w.uvarint(uint64(t.Rows()))
	schema := t.Schema()
	named := t.HasColumnNames()
	w.bool(named)
	w.uvarint(uint64(len(schema)))
	for i, f := range schema {
		c, err := t.ColumnAt(i)
		if err != nil {
			return nil, err
		}
		w.byte(byte(f.Kind))
		if named {
			w.string(f.Name)
		}
		if err := encodeColumn(w, c); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

func decodeBody(body []byte, opts []table.Option) (*table.Table, error) {
	r := &reader{buf: body}
	rows := r.count()
	named := r.bool()
	ncols := r.count()
	if r.err != nil {
		return nil, r.err
	}

	cols := make([]columnar.Column, 0, ncols)
	var names []string
	if named {
		names = make([]string, 0, ncols)
	}
	for i := 0; i < ncols; i++ {
		kind := columnar.Kind(r.byte())
		if named {
			names = append(names, r.string())
		}
		if r.err != nil {
			return nil, r.err
		}
		c, err := decodeColumn(r, kind, rows)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if r.pos != len(r.buf) {
		return nil, tableerrors.Newf(tableerrors.ErrorTypeData,
			"%d trailing bytes after last column", len(r.buf)-r.pos)
	}

	t, err := table.FromColumns(cols, names, opts...)
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeData, "invalid snapshot schema")
	}
	return t, nil
}
