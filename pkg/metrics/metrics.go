// Package metrics provides Prometheus instrumentation for coltable tables.
//
// # Overview
//
// A Collector is attached to one table and records:
//   - rows added and removed
//   - capacity changes, labelled by reason (grow, shrink, flush, reserve, clear)
//   - scans, labelled by operation (search, filter, aggregate, sort)
//   - the current row count and backing capacity as gauges
//
// # Basic Usage
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewCollector("orders", metrics.Options{
//	    Namespace:  "coltable",
//	    Registerer: reg,
//	})
//	t := table.New(table.WithMetrics(collector))
//
// A nil *Collector is valid and records nothing, so tables without metrics
// pay only a nil check per operation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resize reasons
const (
	ReasonGrow    = "grow"
	ReasonShrink  = "shrink"
	ReasonFlush   = "flush"
	ReasonReserve = "reserve"
	ReasonClear   = "clear"
)

// Scan operations
const (
	OpSearch    = "search"
	OpFilter    = "filter"
	OpAggregate = "aggregate"
	OpSort      = "sort"
)

// Options configures a Collector.
type Options struct {
	// Namespace prefixes every metric name. Defaults to "coltable".
	Namespace string
	// Registerer receives the metrics. nil leaves them unregistered, which
	// is what tests and short-lived tables usually want.
	Registerer prometheus.Registerer
}

// Collector records the activity of a single table.
type Collector struct {
	table       string
	rowsAdded   prometheus.Counter
	rowsRemoved prometheus.Counter
	resizes     *prometheus.CounterVec
	scans       *prometheus.CounterVec
	rows        prometheus.Gauge
	capacity    prometheus.Gauge
}

// NewCollector creates a collector whose metrics carry a constant "table"
// label. Registering two collectors for the same table name on one
// registerer panics, as with any duplicate Prometheus registration.
func NewCollector(table string, opts Options) *Collector {
	ns := opts.Namespace
	if ns == "" {
		ns = "coltable"
	}
	labels := prometheus.Labels{"table": table}
	factory := promauto.With(opts.Registerer)

	return &Collector{
		table: table,
		rowsAdded: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "rows_added_total",
			Help:        "Total number of rows appended or inserted",
			ConstLabels: labels,
		}),
		rowsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "rows_removed_total",
			Help:        "Total number of rows removed",
			ConstLabels: labels,
		}),
		resizes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "resizes_total",
			Help:        "Backing capacity changes by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		scans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "scans_total",
			Help:        "Full-column scans by operation",
			ConstLabels: labels,
		}, []string{"op"}),
		rows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "rows",
			Help:        "Current logical row count",
			ConstLabels: labels,
		}),
		capacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   "table",
			Name:        "capacity",
			Help:        "Current backing capacity shared by all columns",
			ConstLabels: labels,
		}),
	}
}

// Table returns the table label value
func (c *Collector) Table() string {
	if c == nil {
		return ""
	}
	return c.table
}

// RowsAdded counts n appended or inserted rows
func (c *Collector) RowsAdded(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rowsAdded.Add(float64(n))
}

// RowsRemoved counts n removed rows
func (c *Collector) RowsRemoved(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rowsRemoved.Add(float64(n))
}

// Resized counts a capacity change
func (c *Collector) Resized(reason string) {
	if c == nil {
		return
	}
	c.resizes.WithLabelValues(reason).Inc()
}

// Scanned counts a full-column scan
func (c *Collector) Scanned(op string) {
	if c == nil {
		return
	}
	c.scans.WithLabelValues(op).Inc()
}

// Observe sets the row and capacity gauges
func (c *Collector) Observe(rows, capacity int) {
	if c == nil {
		return
	}
	c.rows.Set(float64(rows))
	c.capacity.Set(float64(capacity))
}
