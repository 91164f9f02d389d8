package table

import (
	"regexp"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// compilePattern anchors pattern so that it must match the whole text.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, tableerrors.Wrap(err, tableerrors.ErrorTypeValidation, "invalid pattern").
			WithDetail("pattern", pattern)
	}
	return re, nil
}

// IndexOf returns the first row whose canonical text in col fully matches
// pattern, or -1.
func (t *Table) IndexOf(col Ref, pattern string) (int, error) {
	return t.IndexOfFrom(col, 0, pattern)
}

// IndexOfFrom is IndexOf starting at row start. A start at or past Rows
// finds nothing.
func (t *Table) IndexOfFrom(col Ref, start int, pattern string) (int, error) {
	i, err := col.resolve(t)
	if err != nil {
		return -1, err
	}
	if start < 0 {
		return -1, tableerrors.OutOfRange(start, t.rows)
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return -1, err
	}
	t.metrics.Scanned(metrics.OpSearch)
	c := t.columns[i]
	for r := start; r < t.rows; r++ {
		if re.MatchString(columnar.Text(c, r)) {
			return r, nil
		}
	}
	return -1, nil
}

// Match returns the set of rows whose canonical text in col fully matches
// pattern.
func (t *Table) Match(col Ref, pattern string) (*roaring.Bitmap, error) {
	i, err := col.resolve(t)
	if err != nil {
		return nil, err
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	t.metrics.Scanned(metrics.OpSearch)
	c := t.columns[i]
	matches := roaring.New()
	for r := 0; r < t.rows; r++ {
		if re.MatchString(columnar.Text(c, r)) {
			matches.Add(uint32(r))
		}
	}
	return matches, nil
}

// IndexOfAll returns every matching row in ascending order, or nil when no
// row matches.
func (t *Table) IndexOfAll(col Ref, pattern string) ([]int, error) {
	matches, err := t.Match(col, pattern)
	if err != nil {
		return nil, err
	}
	if matches.IsEmpty() {
		return nil, nil
	}
	return toRows(matches), nil
}

func toRows(set *roaring.Bitmap) []int {
	rows := make([]int, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		rows = append(rows, int(it.Next()))
	}
	return rows
}

// Filter returns a new table holding the matching rows in their original
// order. The result has the same schema, fresh storage with capacity equal to
// its row count, and no metrics. No match gives an empty table, not an error.
func (t *Table) Filter(col Ref, pattern string) (*Table, error) {
	matches, err := t.Match(col, pattern)
	if err != nil {
		return nil, err
	}
	out, err := t.Take(matches)
	if err != nil {
		return nil, err
	}
	t.metrics.Scanned(metrics.OpFilter)
	t.logger.Debug("table filtered",
		zap.Stringer("column", col),
		zap.String("pattern", pattern),
		zap.Int("rows", t.rows),
		zap.Uint64("matched", matches.GetCardinality()))
	return out, nil
}

// Take returns a new table holding the given rows in ascending order.
func (t *Table) Take(rows *roaring.Bitmap) (*Table, error) {
	if rows == nil {
		return nil, tableerrors.New(tableerrors.ErrorTypeValidation, "row set is nil")
	}
	if !rows.IsEmpty() && int(rows.Maximum()) >= t.rows {
		return nil, tableerrors.OutOfRange(int(rows.Maximum()), t.rows)
	}
	selected := toRows(rows)
	out := &Table{
		columns:  make([]columnar.Column, len(t.columns)),
		rows:     len(selected),
		capacity: len(selected),
		owner:    columnar.NewOwner(),
		policy:   t.policy,
		logger:   t.logger,
	}
	for k, c := range t.columns {
		sel, err := c.Select(selected)
		if err != nil {
			return nil, err
		}
		_ = out.owner.Attach(sel)
		out.columns[k] = sel
	}
	if t.names != nil {
		out.names = append([]string(nil), t.names...)
	}
	out.reindex()
	return out, nil
}
