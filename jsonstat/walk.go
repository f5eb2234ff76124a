package jsonstat

import (
	"errors"
	"iter"
)

// WalkFunc is called for each cell during traversal.
// coord is the cell's coordinate; it is not reused between calls.
// Return nil to continue walking, ErrStopWalk to stop quietly, or any other
// error to stop and have Walk return it.
type WalkFunc func(coord []int, cell Cell) error

// Walk visits every cell in ascending offset order, so the last dimension
// varies fastest.
//
// Example:
//
//	ds.Walk(func(coord []int, cell jsonstat.Cell) error {
//	    fmt.Println(coord, cell.Labels, cell.Value)
//	    return nil
//	})
func (d *Dataset) Walk(fn WalkFunc) error {
	for off, coord := range d.codec.All() {
		if err := fn(coord, d.cell(coord, off)); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Cells returns an iterator over every coordinate and its cell in
// ascending offset order.
func (d *Dataset) Cells() iter.Seq2[[]int, Cell] {
	return func(yield func([]int, Cell) bool) {
		for off, coord := range d.codec.All() {
			if !yield(coord, d.cell(coord, off)) {
				return
			}
		}
	}
}
