package config

import (
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Config is the root configuration structure.
type Config struct {
	// Table holds the capacity policy for tables
	Table TableConfig `yaml:"table" json:"table" mapstructure:"table"`

	// Logging configures the global logger
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Metrics configures Prometheus reporting
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Snapshot configures snapshot compression
	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot" mapstructure:"snapshot"`
}

// TableConfig controls how a table releases capacity after rows are removed.
// Growth always doubles and is not configurable.
type TableConfig struct {
	// ShrinkBuffer is the slack left above the row count after an implicit shrink
	ShrinkBuffer int `yaml:"shrink_buffer" json:"shrink_buffer" mapstructure:"shrink_buffer"`
	// ShrinkFactor triggers a shrink once capacity exceeds
	// ShrinkFactor * (rows + ShrinkBuffer)
	ShrinkFactor int `yaml:"shrink_factor" json:"shrink_factor" mapstructure:"shrink_factor"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" mapstructure:"level"`
	Development bool   `yaml:"development" json:"development" mapstructure:"development"`
	Encoding    string `yaml:"encoding" json:"encoding" mapstructure:"encoding"` // json or console
}

// MetricsConfig controls Prometheus reporting.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace" mapstructure:"namespace"`
}

// SnapshotConfig selects the compression used for snapshots.
type SnapshotConfig struct {
	// Algorithm is one of none, gzip, snappy, lz4, zstd, s2, deflate
	Algorithm string `yaml:"algorithm" json:"algorithm" mapstructure:"algorithm"`
	// Level is 1 (fastest) through 9 (best)
	Level int `yaml:"level" json:"level" mapstructure:"level"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Table:    TableConfig{ShrinkBuffer: 4, ShrinkFactor: 2},
		Snapshot: SnapshotConfig{Level: 5},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty string fields with their defaults. Numeric
// fields are left alone because zero can be a deliberate value; the loader
// supplies their defaults when a key is absent.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = "json"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "coltable"
	}
	if c.Snapshot.Algorithm == "" {
		c.Snapshot.Algorithm = "zstd"
	}
}

var (
	validLevels     = []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}
	validEncodings  = []string{"json", "console"}
	validAlgorithms = []string{"none", "gzip", "snappy", "lz4", "zstd", "s2", "deflate"}
)

// Validate checks every section and returns a config error naming the first
// invalid field.
func (c *Config) Validate() error {
	if c.Table.ShrinkBuffer < 0 {
		return invalid("table.shrink_buffer", c.Table.ShrinkBuffer, "must not be negative")
	}
	if c.Table.ShrinkFactor < 1 {
		return invalid("table.shrink_factor", c.Table.ShrinkFactor, "must be at least 1")
	}
	if !contains(validLevels, c.Logging.Level) {
		return invalid("logging.level", c.Logging.Level, "unknown level")
	}
	if !contains(validEncodings, c.Logging.Encoding) {
		return invalid("logging.encoding", c.Logging.Encoding, "must be json or console")
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace", c.Metrics.Namespace, "required when metrics are enabled")
	}
	if !contains(validAlgorithms, c.Snapshot.Algorithm) {
		return invalid("snapshot.algorithm", c.Snapshot.Algorithm, "unknown algorithm")
	}
	if c.Snapshot.Level < 1 || c.Snapshot.Level > 9 {
		return invalid("snapshot.level", c.Snapshot.Level, "must be between 1 and 9")
	}
	return nil
}

func invalid(field string, value interface{}, reason string) error {
	return tableerrors.Newf(tableerrors.ErrorTypeConfig, "invalid %s: %s", field, reason).
		WithDetail("field", field).
		WithDetail("value", value)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
