package table

import (
	"github.com/ajitpratap0/coltable/pkg/config"
	"github.com/ajitpratap0/coltable/pkg/metrics"
	"go.uber.org/zap"
)

// Policy controls when row removal releases capacity.
type Policy struct {
	// ShrinkBuffer is the slack kept above the row count after a shrink.
	ShrinkBuffer int
	// ShrinkFactor triggers a shrink once capacity exceeds
	// ShrinkFactor*(rows+ShrinkBuffer).
	ShrinkFactor int
}

// DefaultPolicy keeps four spare rows and shrinks at twice that footprint.
func DefaultPolicy() Policy {
	return Policy{ShrinkBuffer: 4, ShrinkFactor: 2}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.ShrinkBuffer < 0 {
		p.ShrinkBuffer = d.ShrinkBuffer
	}
	if p.ShrinkFactor < 1 {
		p.ShrinkFactor = d.ShrinkFactor
	}
	return p
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used for capacity and scan events.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics attaches a Prometheus collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(t *Table) {
		t.metrics = c
	}
}

// WithPolicy overrides the shrink policy. Out-of-range fields fall back to
// their defaults.
func WithPolicy(p Policy) Option {
	return func(t *Table) {
		t.policy = p.normalized()
	}
}

// WithConfig applies the table section of a loaded configuration.
func WithConfig(cfg config.TableConfig) Option {
	return WithPolicy(Policy{ShrinkBuffer: cfg.ShrinkBuffer, ShrinkFactor: cfg.ShrinkFactor})
}
