package jsonstat

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ParseFilters parses a textual filter selection into dimension and
// category references.
// Selection format: dim=category[,dim=category...]
//
// Examples:
//   - "Kjonn=0" -> {"Kjonn": "0"}
//   - "sex=Both sexes, Alder=15-74" -> {"sex": "Both sexes", "Alder": "15-74"}
//   - "" -> {}
//
// Returns an error if a term has no '=' separator, an empty side, or if a
// dimension is named twice.
func ParseFilters(expr string) (map[string]string, error) {
	filters := make(map[string]string)
	if strings.TrimSpace(expr) == "" {
		return filters, nil
	}

	for _, term := range strings.Split(expr, ",") {
		dim, cat, ok := strings.Cut(term, "=")
		if !ok {
			return nil, fmt.Errorf("filter term must contain '=' separator: %q", term)
		}
		dim = strings.TrimSpace(dim)
		cat = strings.TrimSpace(cat)
		if dim == "" || cat == "" {
			return nil, fmt.Errorf("filter term has an empty side: %q", term)
		}
		if _, dup := filters[dim]; dup {
			return nil, fmt.Errorf("dimension %q filtered twice", dim)
		}
		filters[dim] = cat
	}
	return filters, nil
}

// FormatFilters is the inverse of ParseFilters. Terms are sorted by
// dimension reference.
func FormatFilters(filters map[string]string) string {
	terms := make([]string, 0, len(filters))
	for _, dim := range slices.Sorted(maps.Keys(filters)) {
		terms = append(terms, dim+"="+filters[dim])
	}
	return strings.Join(terms, ",")
}

// ParseCoordinate parses a comma separated list of category positions,
// e.g. "0,0,9,1".
func ParseCoordinate(expr string) ([]int, error) {
	parts := strings.Split(expr, ",")
	coord := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("coordinate component %d: %w", i, err)
		}
		coord[i] = v
	}
	return coord, nil
}

// LookupDimension resolves a dimension given by id, label or position.
// Ids take precedence over labels, labels over positions.
func (d *Dataset) LookupDimension(ref string) (int, error) {
	if i, err := d.DimensionIndex(ref); err == nil {
		return i, nil
	}
	for i, dim := range d.dims {
		if dim.Label == ref {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil {
		return d.resolve(ByIndex(i))
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, ref)
}

// LookupCategory resolves a category of dimension dim given by id, label
// or position.
func (d *Dataset) LookupCategory(dim int, ref string) (int, error) {
	pos, err := d.CategoryIndex(ByIndex(dim), ref)
	if err == nil {
		return pos, nil
	}
	if i, convErr := strconv.Atoi(ref); convErr == nil {
		if i >= 0 && i < d.dims[dim].Size() {
			return i, nil
		}
	}
	return 0, err
}

// ResolveFilters turns textual filters into the positional form accepted
// by Table.
func (d *Dataset) ResolveFilters(filters map[string]string) (map[int]int, error) {
	resolved := make(map[int]int, len(filters))
	for _, ref := range slices.Sorted(maps.Keys(filters)) {
		dim, err := d.LookupDimension(ref)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		if _, dup := resolved[dim]; dup {
			return nil, fmt.Errorf("%w: dimension %q filtered twice", ErrInvalidTableRequest, d.dims[dim].ID)
		}
		pos, err := d.LookupCategory(dim, filters[ref])
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		resolved[dim] = pos
	}
	return resolved, nil
}
