package dtype

import (
	"fmt"
	"math"
	"strconv"
)

// Float64 converts a decoded number to float64.
// It fails for any value whose class is not ClassNumber.
func Float64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case numberText:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", n.String(), err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %s", ClassOf(v))
	}
}

// Int converts a decoded number to int. Fractional values and values that
// do not fit in an int are rejected.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, fmt.Errorf("integer %d overflows int", n)
		}
		return int(n), nil
	case uint:
		if n > math.MaxInt {
			return 0, fmt.Errorf("integer %d overflows int", n)
		}
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, fmt.Errorf("integer %d overflows int", n)
		}
		return int(n), nil
	case numberText:
		i, err := n.Int64()
		if err == nil {
			return Int(i)
		}
		f, ferr := n.Float64()
		if ferr != nil {
			return 0, fmt.Errorf("invalid integer %q: %w", n.String(), err)
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(n)
	case float32:
		return intFromFloat(float64(n))
	default:
		return 0, fmt.Errorf("expected integer, got %s", ClassOf(v))
	}
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("integer %v overflows int", f)
	}
	return int(f), nil
}

// String returns v as a string. Strings are returned unchanged; numbers and
// booleans are rendered in their canonical text form, which lets YAML
// documents use unquoted category ids such as 2015 or 0.
func String(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case numberText:
		return s.String(), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected string, got %s", ClassOf(v))
	}
}

// Strings converts a decoded array to a string slice.
func Strings(v any) ([]string, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %s", ClassOf(v))
	}
	out := make([]string, len(arr))
	for i, e := range arr {
		s, err := String(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// Ints converts a decoded array to an int slice.
func Ints(v any) ([]int, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %s", ClassOf(v))
	}
	out := make([]int, len(arr))
	for i, e := range arr {
		n, err := Int(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
