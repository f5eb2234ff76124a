package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// LookupFunc returns the value of a named variable and whether it is set.
type LookupFunc func(name string) (string, bool)

// Load reads configuration from environment variables, applies defaults
// and validates the result.
func Load() (*Config, error) {
	return LoadWith(os.LookupEnv)
}

// LoadWith is Load reading variables through lookup.
func LoadWith(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}
	if err := fill(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// fill sets every tagged field of the section structs in v. A field reads
// its env tag, then its envAlt tag, then falls back to its default.
func fill(v reflect.Value, lookup LookupFunc) error {
	for i := range v.NumField() {
		field := v.Type().Field(i)
		dst := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := fill(dst, lookup); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" || !dst.CanSet() {
			continue
		}
		raw := firstSet(lookup, name, field.Tag.Get("envAlt"))
		if raw == "" {
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		switch dst.Kind() {
		case reflect.String:
			dst.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(strings.ReplaceAll(raw, "_", ""))
			if err != nil {
				return fmt.Errorf("invalid value for %s=%q: invalid integer: %w", name, raw, err)
			}
			dst.SetInt(int64(n))
		default:
			return fmt.Errorf("%s: unsupported field type %s", name, dst.Kind())
		}
	}
	return nil
}

func firstSet(lookup LookupFunc, names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v, _ := lookup(name); v != "" {
			return v
		}
	}
	return ""
}
