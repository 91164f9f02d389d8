package table

import (
	"strconv"

	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Ref addresses a column by position or by name.
type Ref interface {
	String() string
	resolve(t *Table) (int, error)
}

// Index references a column by position.
type Index int

func (i Index) String() string { return "#" + strconv.Itoa(int(i)) }

func (i Index) resolve(t *Table) (int, error) {
	if i < 0 || int(i) >= len(t.columns) {
		return -1, tableerrors.OutOfRange(int(i), len(t.columns)).WithDetail("target", "column")
	}
	return int(i), nil
}

// Name references a column by name.
type Name string

func (n Name) String() string { return string(n) }

func (n Name) resolve(t *Table) (int, error) {
	i, ok := t.index[string(n)]
	if !ok {
		return -1, tableerrors.UnknownColumn(string(n))
	}
	return i, nil
}
