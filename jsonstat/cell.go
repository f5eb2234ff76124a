package jsonstat

import (
	"fmt"
)

// Cell is the resolved content of one coordinate: the category label of
// each dimension and the value.
type Cell struct {
	Labels []string
	Value  Value
}

// Offset returns the linear offset of coord in the value array.
func (d *Dataset) Offset(coord []int) (int, error) {
	return d.codec.Offset(coord)
}

// Coordinate returns the coordinate of the cell at a linear offset.
func (d *Dataset) Coordinate(offset int) ([]int, error) {
	return d.codec.Coordinate(offset)
}

// CellAt returns the cell at coord. The returned labels are a fresh slice.
func (d *Dataset) CellAt(coord []int) (Cell, error) {
	off, err := d.codec.Offset(coord)
	if err != nil {
		return Cell{}, err
	}
	return d.cell(coord, off), nil
}

// Value returns the value of the cell at coord.
func (d *Dataset) Value(coord []int) (Value, error) {
	off, err := d.codec.Offset(coord)
	if err != nil {
		return Value{}, err
	}
	return d.cells[off], nil
}

// Status returns the status code recorded for coord. ok is false when the
// document has no status for that cell. Numeric cells may carry a status
// too.
func (d *Dataset) Status(coord []int) (code string, ok bool, err error) {
	off, err := d.codec.Offset(coord)
	if err != nil {
		return "", false, err
	}
	code, ok = d.status[off]
	return code, ok, nil
}

// Slice returns the cells of a rectangular selection in row-major order.
// start is the first coordinate of the selection and count the number of
// categories taken along each dimension.
func (d *Dataset) Slice(start, count []int) ([]Cell, error) {
	offsets, err := d.codec.Hyperslab(start, count)
	if err != nil {
		return nil, fmt.Errorf("slice: %w", err)
	}

	cells := make([]Cell, len(offsets))
	for i, off := range offsets {
		coord, err := d.codec.Coordinate(off)
		if err != nil {
			return nil, err
		}
		cells[i] = d.cell(coord, off)
	}
	return cells, nil
}

// cell resolves the labels of a valid coordinate.
func (d *Dataset) cell(coord []int, off int) Cell {
	labels := make([]string, len(d.dims))
	for i, dim := range d.dims {
		labels[i] = dim.categories[coord[i]].Label
	}
	return Cell{Labels: labels, Value: d.cells[off]}
}
