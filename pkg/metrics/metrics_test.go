package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	c := NewCollector("orders", Options{})

	c.RowsAdded(3)
	c.RowsAdded(0)
	c.RowsRemoved(2)
	c.Resized(ReasonGrow)
	c.Resized(ReasonGrow)
	c.Resized(ReasonShrink)
	c.Scanned(OpFilter)
	c.Observe(7, 10)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.rowsAdded))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rowsRemoved))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.resizes.WithLabelValues(ReasonGrow)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resizes.WithLabelValues(ReasonShrink)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.scans.WithLabelValues(OpFilter)))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.rows))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.capacity))
	assert.Equal(t, "orders", c.Table())
}

func TestCollectorRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("events", Options{Namespace: "test", Registerer: reg})
	c.Observe(1, 2)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_table_rows"])
	assert.True(t, names["test_table_capacity"])
	assert.True(t, names["test_table_rows_added_total"])
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RowsAdded(1)
		c.RowsRemoved(1)
		c.Resized(ReasonFlush)
		c.Scanned(OpSort)
		c.Observe(1, 1)
	})
	assert.Equal(t, "", c.Table())
}
