package table

import (
	"unicode/utf8"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	stringpool "github.com/ajitpratap0/coltable/pkg/strings"
)

// String renders every row as aligned text.
func (t *Table) String() string {
	return t.Format(0)
}

// Format renders at most maxRows rows as aligned text, one line per row
// under a header of column names (#0, #1, ... for unnamed tables). maxRows
// <= 0 renders every row.
func (t *Table) Format(maxRows int) string {
	if len(t.columns) == 0 {
		return "(no columns)"
	}
	shown := t.rows
	if maxRows > 0 && shown > maxRows {
		shown = maxRows
	}

	header := make([]string, len(t.columns))
	widths := make([]int, len(t.columns))
	for k := range t.columns {
		header[k] = Index(k).String()
		if t.names != nil {
			header[k] = t.names[k]
		}
		widths[k] = utf8.RuneCountInString(header[k])
	}
	cells := make([][]string, shown)
	for r := 0; r < shown; r++ {
		cells[r] = make([]string, len(t.columns))
		for k, c := range t.columns {
			s := columnar.Text(c, r)
			cells[r][k] = s
			if n := utf8.RuneCountInString(s); n > widths[k] {
				widths[k] = n
			}
		}
	}

	estimate := 0
	for _, w := range widths {
		estimate += w + 2
	}
	size := stringpool.SizeFor(estimate * (shown + 1))
	b := stringpool.GetBuilder(size)
	defer stringpool.PutBuilder(b, size)

	writeLine(b, header, widths)
	for _, row := range cells {
		_ = b.WriteByte('\n')
		writeLine(b, row, widths)
	}
	if shown < t.rows {
		b.WriteString(stringpool.Sprintf("\n... %d more rows", t.rows-shown))
	}
	return b.String()
}

func writeLine(b *stringpool.Builder, fields []string, widths []int) {
	for k, f := range fields {
		if k > 0 {
			b.WriteString("  ")
		}
		if k == len(fields)-1 {
			b.WriteString(f)
			continue
		}
		b.WriteString(stringpool.PadRight(f, widths[k]))
	}
}
