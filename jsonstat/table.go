package jsonstat

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxFractionDigits is the number of decimals kept when formatting table
// values.
const maxFractionDigits = 3

// Table projects the dataset onto a two-dimensional grid with rowDim
// categories down the side and colDim categories across the top.
//
// filters fixes the category position of other dimensions (dimension index
// to category position). Dimensions that are neither rows, columns nor
// filtered stay at their first category.
//
// The result has size(rowDim)+1 rows of size(colDim)+1 strings. The first
// row holds "" followed by the column labels; every following row holds a
// row label followed by the formatted values. Numbers are formatted for the
// configured locale, status codes are copied verbatim and missing values
// use the configured placeholder.
func (d *Dataset) Table(rowDim, colDim int, filters map[int]int) ([][]string, error) {
	if err := d.checkTable(rowDim, colDim, filters); err != nil {
		return nil, err
	}

	base := make([]int, len(d.dims))
	for dim, pos := range filters {
		base[dim] = pos
	}
	baseOff, err := d.codec.Offset(base)
	if err != nil {
		return nil, err
	}

	strides := d.codec.Strides()
	rows := d.dims[rowDim].categories
	cols := d.dims[colDim].categories
	p := message.NewPrinter(d.opts.locale)

	grid := make([][]string, 0, len(rows)+1)

	header := make([]string, 1, len(cols)+1)
	for _, c := range cols {
		header = append(header, c.Label)
	}
	grid = append(grid, header)

	for i, r := range rows {
		row := make([]string, 1, len(cols)+1)
		row[0] = r.Label
		rowOff := baseOff + i*strides[rowDim]
		for j := range cols {
			row = append(row, d.format(p, d.cells[rowOff+j*strides[colDim]]))
		}
		grid = append(grid, row)
	}

	return grid, nil
}

// checkTable validates a table request. The first broken rule wins.
func (d *Dataset) checkTable(rowDim, colDim int, filters map[int]int) error {
	n := len(d.dims)

	switch {
	case rowDim < 0:
		return fmt.Errorf("%w: row dimension %d is negative", ErrInvalidTableRequest, rowDim)
	case colDim < 0:
		return fmt.Errorf("%w: column dimension %d is negative", ErrInvalidTableRequest, colDim)
	case rowDim >= n:
		return fmt.Errorf("%w: row dimension %d out of range, dataset has %d dimensions", ErrInvalidTableRequest, rowDim, n)
	case colDim >= n:
		return fmt.Errorf("%w: column dimension %d out of range, dataset has %d dimensions", ErrInvalidTableRequest, colDim, n)
	case rowDim == colDim:
		return fmt.Errorf("%w: row and column dimension are both %d", ErrInvalidTableRequest, rowDim)
	}

	keys := slices.Sorted(maps.Keys(filters))
	for _, dim := range keys {
		switch dim {
		case rowDim:
			return fmt.Errorf("%w: filter on row dimension %d", ErrInvalidTableRequest, dim)
		case colDim:
			return fmt.Errorf("%w: filter on column dimension %d", ErrInvalidTableRequest, dim)
		}
	}
	for _, dim := range keys {
		if dim < 0 || dim >= n {
			return fmt.Errorf("%w: filter dimension %d out of range, dataset has %d dimensions", ErrInvalidTableRequest, dim, n)
		}
		if pos, size := filters[dim], d.dims[dim].Size(); pos < 0 || pos >= size {
			return fmt.Errorf("%w: filter category %d out of range for dimension %q of size %d",
				ErrInvalidTableRequest, pos, d.dims[dim].ID, size)
		}
	}
	return nil
}

func (d *Dataset) format(p *message.Printer, v Value) string {
	switch v.Kind() {
	case KindNumber:
		return p.Sprint(number.Decimal(v.num, number.MaxFractionDigits(maxFractionDigits)))
	case KindStatus:
		return v.status
	default:
		return d.opts.missing
	}
}

// TableByID is Table with dimensions and filters given by reference
// instead of position. Dimensions are resolved by id, label or position;
// filter categories by id, label or position within their dimension.
func (d *Dataset) TableByID(rowDim, colDim string, filters map[string]string) ([][]string, error) {
	row, err := d.LookupDimension(rowDim)
	if err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	col, err := d.LookupDimension(colDim)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}
	resolved, err := d.ResolveFilters(filters)
	if err != nil {
		return nil, err
	}
	return d.Table(row, col, resolved)
}
