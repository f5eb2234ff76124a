package dtype

import (
	"encoding/json"
	"math"
	"testing"

	gojson "github.com/goccy/go-json"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		expected Class
	}{
		{"nil", nil, ClassNull},
		{"string", "x", ClassString},
		{"bool", true, ClassBool},
		{"object", map[string]any{}, ClassObject},
		{"array", []any{}, ClassArray},
		{"float64", 1.5, ClassNumber},
		{"int", 3, ClassNumber},
		{"uint64", uint64(3), ClassNumber},
		{"json.Number", json.Number("4.6"), ClassNumber},
		{"go-json Number", gojson.Number("4.6"), ClassNumber},
		{"struct", struct{}{}, ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.v); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		expected float64
	}{
		{"float64", 4.6, 4.6},
		{"float32", float32(0.5), 0.5},
		{"int", 110, 110},
		{"int64", int64(-7), -7},
		{"uint64", uint64(9), 9},
		{"json.Number int", json.Number("110"), 110},
		{"json.Number float", json.Number("4.6"), 4.6},
		{"json.Number exp", json.Number("1e3"), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float64(tt.v)
			if err != nil {
				t.Fatalf("Float64 failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFloat64Errors(t *testing.T) {
	for _, v := range []any{nil, "4.6", true, []any{}, json.Number("abc")} {
		if _, err := Float64(v); err == nil {
			t.Errorf("expected error for %#v", v)
		}
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		expected int
	}{
		{"int", 13, 13},
		{"float64 integral", 2.0, 2},
		{"json.Number", json.Number("12"), 12},
		{"json.Number integral float", json.Number("3.0"), 3},
		{"uint64", uint64(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int(tt.v)
			if err != nil {
				t.Fatalf("Int failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestIntErrors(t *testing.T) {
	bad := []any{
		nil,
		"1",
		1.5,
		json.Number("1.5"),
		math.Inf(1),
		uint64(math.MaxUint64),
	}
	for _, v := range bad {
		if _, err := Int(v); err == nil {
			t.Errorf("expected error for %#v", v)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v        any
		expected string
	}{
		{"Tid", "Tid"},
		{2015, "2015"},
		{json.Number("0"), "0"},
		{1.5, "1.5"},
		{true, "true"},
	}

	for _, tt := range tests {
		got, err := String(tt.v)
		if err != nil {
			t.Fatalf("String(%#v) failed: %v", tt.v, err)
		}
		if got != tt.expected {
			t.Errorf("String(%#v) = %q, want %q", tt.v, got, tt.expected)
		}
	}

	if _, err := String(nil); err == nil {
		t.Error("expected error for nil")
	}
}

func TestSliceConversions(t *testing.T) {
	ids, err := Strings([]any{"Kjonn", "Alder"})
	if err != nil {
		t.Fatalf("Strings failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "Kjonn" || ids[1] != "Alder" {
		t.Errorf("unexpected ids %v", ids)
	}

	sizes, err := Ints([]any{json.Number("1"), 13.0, 2})
	if err != nil {
		t.Fatalf("Ints failed: %v", err)
	}
	if len(sizes) != 3 || sizes[0] != 1 || sizes[1] != 13 || sizes[2] != 2 {
		t.Errorf("unexpected sizes %v", sizes)
	}

	if _, err := Ints([]any{1, "x"}); err == nil {
		t.Error("expected error for non-numeric element")
	}
	if _, err := Strings("not an array"); err == nil {
		t.Error("expected error for non-array")
	}
}
