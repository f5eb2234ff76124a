package config

import (
	"strings"
	"testing"
)

func env(vars map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(env(nil))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Output.Locale != "en" {
		t.Errorf("Output.Locale = %q, want %q", cfg.Output.Locale, "en")
	}
	if cfg.Output.Missing != "" {
		t.Errorf("Output.Missing = %q, want empty", cfg.Output.Missing)
	}
	if cfg.Limits.MaxCells != 50000000 {
		t.Errorf("Limits.MaxCells = %d, want %d", cfg.Limits.MaxCells, 50000000)
	}
	if cfg.LocaleTag().String() != "en" {
		t.Errorf("LocaleTag() = %v, want en", cfg.LocaleTag())
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadWith(env(map[string]string{
		"JSONSTAT_LOG_LEVEL":    "debug",
		"LOG_FORMAT":            "json",
		"JSONSTAT_LOCALE":       "nb-NO",
		"JSONSTAT_MISSING":      "-",
		"JSONSTAT_TABLE_FORMAT": "csv",
		"JSONSTAT_MAX_CELLS":    "1_000",
	}))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q (from alternate variable)", cfg.Logging.Format, "json")
	}
	if cfg.Output.Missing != "-" {
		t.Errorf("Output.Missing = %q, want %q", cfg.Output.Missing, "-")
	}
	if cfg.Output.TableFormat != "csv" {
		t.Errorf("Output.TableFormat = %q, want %q", cfg.Output.TableFormat, "csv")
	}
	if cfg.Limits.MaxCells != 1000 {
		t.Errorf("Limits.MaxCells = %d, want %d", cfg.Limits.MaxCells, 1000)
	}
	if base, _ := cfg.LocaleTag().Base(); base.String() != "nb" {
		t.Errorf("LocaleTag() base = %v, want nb", base)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	_, err := LoadWith(env(map[string]string{"JSONSTAT_MAX_CELLS": "lots"}))
	if err == nil {
		t.Fatal("expected error for invalid integer")
	}
	if !strings.Contains(err.Error(), "JSONSTAT_MAX_CELLS") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoad_AcceptsEveryLoggerLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "WARN"} {
		cfg, err := LoadWith(env(map[string]string{"JSONSTAT_LOG_LEVEL": level}))
		if err != nil {
			t.Errorf("LoadWith(level=%q) error = %v", level, err)
			continue
		}
		if cfg.Logging.Level != level {
			t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, level)
		}
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "loud", Format: "xml"},
		Output:  OutputConfig{Locale: "not a tag!", TableFormat: "html"},
		Limits:  LimitsConfig{MaxCells: 0},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{
		"JSONSTAT_LOG_LEVEL",
		"JSONSTAT_LOG_FORMAT",
		"JSONSTAT_LOCALE",
		"JSONSTAT_TABLE_FORMAT",
		"JSONSTAT_MAX_CELLS",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %s: %v", want, err)
		}
	}
	if cfg.LocaleTag().String() != "en" {
		t.Errorf("LocaleTag() fallback = %v, want en", cfg.LocaleTag())
	}
}

func TestString(t *testing.T) {
	cfg, err := LoadWith(env(nil))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}
	s := cfg.String()
	if !strings.Contains(s, `Level: "warn"`) || !strings.Contains(s, "MaxCells: 50000000") {
		t.Errorf("String() = %s", s)
	}
}
