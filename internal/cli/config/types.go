// Package config provides configuration management for the sqlbridge CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	// Read is the dialect SQL input is parsed in.
	Read string `koanf:"read"`
	// Write is the dialect output is rendered in.
	Write string `koanf:"write"`
	// Verbose enables debug logging on stderr.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultRead  = "vertica"
	DefaultWrite = "ansi"
)
