package table

import (
	"math"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

func (t *Table) numeric(ref Ref) (columnar.Column, error) {
	i, err := ref.resolve(t)
	if err != nil {
		return nil, err
	}
	c := t.columns[i]
	if !c.Kind().IsNumeric() {
		return nil, tableerrors.Newf(tableerrors.ErrorTypeType,
			"column %s of kind %v is not numeric", t.describe(i), c.Kind()).
			WithDetail("kind", c.Kind().String())
	}
	if t.rows == 0 {
		return nil, tableerrors.OutOfRange(0, 0).WithDetail("reason", "no rows to aggregate")
	}
	t.metrics.Scanned(metrics.OpAggregate)
	return c, nil
}

// fold widens every value of a numeric column and combines it with f.
func (t *Table) fold(ref Ref, f func(acc, v float64) float64) (float64, error) {
	c, err := t.numeric(ref)
	if err != nil {
		return 0, err
	}
	acc, _ := c.Float(0)
	for r := 1; r < t.rows; r++ {
		v, _ := c.Float(r)
		acc = f(acc, v)
	}
	return acc, nil
}

// Minimum returns the smallest value of a numeric column.
func (t *Table) Minimum(col Ref) (float64, error) {
	return t.fold(col, math.Min)
}

// Maximum returns the largest value of a numeric column.
func (t *Table) Maximum(col Ref) (float64, error) {
	return t.fold(col, math.Max)
}

// Sum returns the total of a numeric column.
func (t *Table) Sum(col Ref) (float64, error) {
	return t.fold(col, func(acc, v float64) float64 { return acc + v })
}

// Average returns the arithmetic mean of a numeric column.
func (t *Table) Average(col Ref) (float64, error) {
	sum, err := t.Sum(col)
	if err != nil {
		return 0, err
	}
	return sum / float64(t.rows), nil
}
