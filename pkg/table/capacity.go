package table

import (
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
	"go.uber.org/zap"
)

// ensureCapacity makes room for need rows, doubling the current capacity.
// An empty table grows to exactly need.
func (t *Table) ensureCapacity(need int) {
	if need <= t.capacity {
		return
	}
	capacity := 2 * t.capacity
	if capacity < need {
		capacity = need
	}
	t.resize(capacity, metrics.ReasonGrow)
}

// resize sets every column's capacity to exactly capacity (>= rows).
func (t *Table) resize(capacity int, reason string) {
	old := t.capacity
	for _, c := range t.columns {
		// capacity >= rows == c.Len(), so Resize cannot fail
		_ = t.owner.Resize(c, capacity)
	}
	t.capacity = capacity

	t.logger.Debug("table capacity changed",
		zap.String("reason", reason),
		zap.Int("rows", t.rows),
		zap.Int("old_capacity", old),
		zap.Int("capacity", capacity))
	t.metrics.Resized(reason)
	t.metrics.Observe(t.rows, t.capacity)
}

// maybeShrink applies the shrink policy after rows were removed.
func (t *Table) maybeShrink() {
	target := t.rows + t.policy.ShrinkBuffer
	if t.capacity > t.policy.ShrinkFactor*target {
		t.resize(target, metrics.ReasonShrink)
	}
}

// Flush trims the capacity to exactly the row count.
func (t *Table) Flush() {
	if t.capacity != t.rows {
		t.resize(t.rows, metrics.ReasonFlush)
	}
}

// Reserve grows the capacity to at least n rows. It never shrinks.
func (t *Table) Reserve(n int) error {
	if n < 0 {
		return tableerrors.Newf(tableerrors.ErrorTypeValidation, "negative capacity %d", n)
	}
	if n > t.capacity && len(t.columns) > 0 {
		t.resize(n, metrics.ReasonReserve)
	}
	return nil
}
