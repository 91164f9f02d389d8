// Package config provides configuration management for coltable.
//
// A single Config structure carries every tunable: the table capacity policy,
// logger settings, metrics reporting and snapshot compression. The library
// packages take the relevant section (for example table.WithConfig(cfg.Table));
// the command line tool loads the whole file.
//
// # Key Features
//
// - Structured sections: Table, Logging, Metrics, Snapshot
// - Environment variable substitution with ${VAR_NAME} syntax
// - Per-key environment overrides with the COLTABLE_ prefix
// - Automatic defaults and validation
//
// # Usage
//
// ## Loading a file
//
//	cfg, err := config.Load("coltable.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	t := table.New(table.WithConfig(cfg.Table))
//
// ## Environment Variable Substitution
//
//	# coltable.yaml
//	table:
//	  shrink_buffer: ${SHRINK_BUFFER}
//	snapshot:
//	  algorithm: lz4
//
// ## Environment Overrides
//
// Any key can be overridden without touching the file. Dots become
// underscores and the name is upper-cased:
//
//	COLTABLE_TABLE_SHRINK_FACTOR=4
//	COLTABLE_LOGGING_LEVEL=debug
//
// # Defaults
//
//	table.shrink_buffer   4
//	table.shrink_factor   2
//	logging.level         info
//	logging.encoding      json
//	metrics.namespace     coltable
//	snapshot.algorithm    zstd
//	snapshot.level        5
//
// Validation is performed on load; a failure is a tableerrors config error
// whose "field" detail names the offending key.
package config
