package table

import (
	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"go.uber.org/zap"
)

// SortBy reorders all rows so that col is ascending. The sort is stable, and
// one permutation is applied to every column so rows stay intact.
func (t *Table) SortBy(col Ref) error {
	i, err := col.resolve(t)
	if err != nil {
		return err
	}
	perm := columnar.StablePermutation(t.columns[i])
	for _, c := range t.columns {
		// perm is a permutation of [0, rows) by construction
		_ = t.owner.Permute(c, perm)
	}
	t.metrics.Scanned(metrics.OpSort)
	t.logger.Debug("table sorted",
		zap.Stringer("column", col),
		zap.Int("rows", t.rows))
	return nil
}
