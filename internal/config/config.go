// Package config loads command-line tool settings from environment
// variables with defaults, and validates all settings on startup to fail
// fast on misconfiguration.
package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Config holds all tool configuration.
// All settings can be configured via environment variables.
type Config struct {
	Logging LoggingConfig
	Output  OutputConfig
	Limits  LimitsConfig
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"JSONSTAT_LOG_LEVEL" envAlt:"LOG_LEVEL" default:"warn"`

	// Format is the log output format: text or json (default: text)
	Format string `env:"JSONSTAT_LOG_FORMAT" envAlt:"LOG_FORMAT" default:"text"`
}

// OutputConfig holds table rendering settings.
type OutputConfig struct {
	// Locale is the BCP 47 tag used to format numbers (default: en)
	Locale string `env:"JSONSTAT_LOCALE" default:"en"`

	// Missing is the text shown for cells without value or status (default: empty)
	Missing string `env:"JSONSTAT_MISSING"`

	// TableFormat is the default table output format: text, csv or json (default: text)
	TableFormat string `env:"JSONSTAT_TABLE_FORMAT" default:"text"`
}

// LimitsConfig holds safety limits.
type LimitsConfig struct {
	// MaxCells rejects datasets declaring more cells than this (default: 50000000)
	MaxCells int `env:"JSONSTAT_MAX_CELLS" default:"50000000"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("JSONSTAT_LOG_LEVEL (%q) must be one of: debug, info, warn, warning, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("JSONSTAT_LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if _, err := language.Parse(c.Output.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("JSONSTAT_LOCALE (%q) is not a valid language tag: %v", c.Output.Locale, err))
	}

	validTables := map[string]bool{"text": true, "csv": true, "json": true}
	if !validTables[strings.ToLower(c.Output.TableFormat)] {
		errs = append(errs, fmt.Sprintf("JSONSTAT_TABLE_FORMAT (%q) must be one of: text, csv, json", c.Output.TableFormat))
	}

	if c.Limits.MaxCells <= 0 {
		errs = append(errs, "JSONSTAT_MAX_CELLS must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LocaleTag returns the parsed output locale, or English if it does not
// parse.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Output.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// String returns a representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}, ", c.Logging.Level, c.Logging.Format)
	fmt.Fprintf(&b, "Output: {Locale: %q, Missing: %q, TableFormat: %q}, ",
		c.Output.Locale, c.Output.Missing, c.Output.TableFormat)
	fmt.Fprintf(&b, "Limits: {MaxCells: %d}", c.Limits.MaxCells)
	b.WriteString("}")
	return b.String()
}
