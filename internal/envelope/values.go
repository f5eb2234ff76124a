package envelope

import (
	"fmt"
	"strconv"

	"github.com/robert-malhotra/go-jsonstat/internal/dtype"
)

// decodeValues accepts the dense array form (nullable entries) and the
// sparse object form (offset -> number). total is the declared cell count.
func decodeValues(raw any, total int) ([]Number, error) {
	switch v := raw.(type) {
	case nil:
		return nil, errorf("/dataset/value", "field is missing")

	case []any:
		if len(v) != total {
			return nil, errorf("/dataset/value", "%d values, dimension sizes declare %d cells", len(v), total)
		}
		out := make([]Number, total)
		for i, e := range v {
			if e == nil {
				continue
			}
			f, err := dtype.Float64(e)
			if err != nil {
				return nil, wrapf(pointer("dataset", "value", strconv.Itoa(i)), err, "invalid value")
			}
			out[i] = Number{Value: f, Valid: true}
		}
		return out, nil

	case map[string]any:
		out := make([]Number, total)
		for _, key := range sortedKeys(v) {
			path := pointer("dataset", "value", key)
			off, err := parseOffset(key)
			if err != nil {
				return nil, wrapf(path, err, "invalid offset")
			}
			if off >= total {
				return nil, errorf(path, "offset %d not in [0, %d)", off, total)
			}
			if v[key] == nil {
				continue
			}
			f, err := dtype.Float64(v[key])
			if err != nil {
				return nil, wrapf(path, err, "invalid value")
			}
			out[off] = Number{Value: f, Valid: true}
		}
		return out, nil

	default:
		return nil, errorf("/dataset/value", "expected array or object, got %s", dtype.ClassOf(raw))
	}
}

// decodeStatus accepts an object (offset -> code), an array with one code
// per cell, or a single code applying to every cell. Object keys past the
// last cell are never looked up and are dropped.
func decodeStatus(raw any, total int) (map[int]string, error) {
	status := make(map[int]string)

	switch v := raw.(type) {
	case nil:
		return status, nil

	case string:
		for i := 0; i < total; i++ {
			status[i] = v
		}
		return status, nil

	case []any:
		if len(v) != total {
			return nil, errorf("/dataset/status", "%d status entries, dataset has %d cells", len(v), total)
		}
		for i, e := range v {
			if e == nil {
				continue
			}
			s, err := dtype.String(e)
			if err != nil {
				return nil, wrapf(pointer("dataset", "status", strconv.Itoa(i)), err, "invalid status")
			}
			status[i] = s
		}
		return status, nil

	case map[string]any:
		for _, key := range sortedKeys(v) {
			path := pointer("dataset", "status", key)
			off, err := parseOffset(key)
			if err != nil {
				return nil, wrapf(path, err, "invalid offset")
			}
			if off >= total || v[key] == nil {
				continue
			}
			s, err := dtype.String(v[key])
			if err != nil {
				return nil, wrapf(path, err, "invalid status")
			}
			status[off] = s
		}
		return status, nil

	default:
		return nil, errorf("/dataset/status", "expected object, array or string, got %s", dtype.ClassOf(raw))
	}
}

// parseOffset accepts only the canonical decimal form of a non-negative
// offset, so "5" and "05" never name the same cell.
func parseOffset(key string) (int, error) {
	off, err := strconv.Atoi(key)
	if err != nil {
		return 0, err
	}
	if off < 0 || strconv.Itoa(off) != key {
		return 0, fmt.Errorf("%q is not a canonical offset", key)
	}
	return off, nil
}
