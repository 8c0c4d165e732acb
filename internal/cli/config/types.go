// Package config loads CLI configuration from file, environment
// variables, and flags with a fixed precedence:
// flags > env vars > config file > defaults.
package config

import (
	"fmt"

	"github.com/echelon-labs/echelon/internal/cli/output"
)

// Default values applied before any other configuration source.
const (
	DefaultOutput      = "auto"
	DefaultHistoryFile = ".echelon_history"
)

// Config is the fully resolved CLI configuration.
type Config struct {
	// Output selects the rendering mode: auto, text, markdown, or json.
	Output string `koanf:"output"`
	// Silent suppresses the step-by-step narration and prints only the
	// final result.
	Silent bool `koanf:"silent"`
	// Matrix renders system snapshots as coefficient tables.
	Matrix bool `koanf:"matrix"`
	// Verbose enables debug logging on stderr.
	Verbose bool `koanf:"verbose"`
	// HistoryFile is where the interactive session stores its history.
	HistoryFile string `koanf:"history_file"`
}

// Validate checks field values that koanf cannot check structurally.
func (c *Config) Validate() error {
	if !output.Mode(c.Output).Valid() {
		return fmt.Errorf("invalid output mode %q (want auto, text, markdown, or json)", c.Output)
	}
	return nil
}

// Mode returns the configured output mode.
func (c *Config) Mode() output.Mode {
	return output.Mode(c.Output)
}
