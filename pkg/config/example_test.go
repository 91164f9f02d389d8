package config_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/coltable/pkg/config"
)

// ExampleDefault demonstrates the built-in defaults.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Shrink Buffer: %d\n", cfg.Table.ShrinkBuffer)
	fmt.Printf("Shrink Factor: %d\n", cfg.Table.ShrinkFactor)
	fmt.Printf("Snapshot: %s/%d\n", cfg.Snapshot.Algorithm, cfg.Snapshot.Level)

	// Output:
	// Shrink Buffer: 4
	// Shrink Factor: 2
	// Snapshot: zstd/5
}

// ExampleConfig_Validate shows how to validate a configuration
// before using it.
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Table.ShrinkBuffer = 16
	cfg.Snapshot.Algorithm = "lz4"

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Snapshot.Algorithm = "brotli"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// config: invalid snapshot.algorithm: unknown algorithm
}

// ExampleParse demonstrates loading YAML with partial content; missing keys
// take their defaults.
func ExampleParse() {
	cfg, err := config.Parse([]byte("table:\n  shrink_buffer: 8\n"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cfg.Table.ShrinkBuffer, cfg.Table.ShrinkFactor, cfg.Logging.Level)

	// Output:
	// 8 2 info
}
