// Package layout maps n-dimensional coordinates onto a flat row-major array.
package layout

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrOutOfRange is returned when a coordinate or offset does not address an
// element of the layout.
var ErrOutOfRange = errors.New("coordinate out of range")

// RowMajor describes a row-major storage layout: dimension 0 is the slowest
// varying axis and the last dimension varies fastest.
type RowMajor struct {
	sizes   []int
	strides []int
	total   int
}

// New creates a RowMajor layout for the given dimension sizes.
// Every size must be at least 1.
func New(sizes []int) (*RowMajor, error) {
	n := len(sizes)
	if n == 0 {
		return nil, fmt.Errorf("layout needs at least one dimension")
	}

	for d, s := range sizes {
		if s < 1 {
			return nil, fmt.Errorf("dimension %d has size %d, must be >= 1", d, s)
		}
	}

	l := &RowMajor{
		sizes:   append([]int(nil), sizes...),
		strides: make([]int, n),
	}

	// Calculate strides (row-major order)
	l.strides[n-1] = 1
	for d := n - 2; d >= 0; d-- {
		if l.strides[d+1] > math.MaxInt/sizes[d+1] {
			return nil, fmt.Errorf("layout too large: stride overflow at dimension %d", d)
		}
		l.strides[d] = l.strides[d+1] * sizes[d+1]
	}
	if l.strides[0] > math.MaxInt/sizes[0] {
		return nil, fmt.Errorf("layout too large: element count overflows")
	}
	l.total = l.strides[0] * sizes[0]

	return l, nil
}

// Rank returns the number of dimensions.
func (l *RowMajor) Rank() int {
	return len(l.sizes)
}

// Sizes returns a copy of the dimension sizes.
func (l *RowMajor) Sizes() []int {
	return append([]int(nil), l.sizes...)
}

// Strides returns a copy of the per-dimension strides, in elements.
func (l *RowMajor) Strides() []int {
	return append([]int(nil), l.strides...)
}

// NumElements returns the product of all dimension sizes.
func (l *RowMajor) NumElements() int {
	return l.total
}

// Check validates a coordinate without computing its offset.
func (l *RowMajor) Check(coord []int) error {
	if len(coord) != len(l.sizes) {
		return fmt.Errorf("%w: got %d components, want %d", ErrOutOfRange, len(coord), len(l.sizes))
	}
	for d, c := range coord {
		if c < 0 || c >= l.sizes[d] {
			return fmt.Errorf("%w: component %d is %d, dimension size is %d", ErrOutOfRange, d, c, l.sizes[d])
		}
	}
	return nil
}

// Offset returns the linear offset of coord.
func (l *RowMajor) Offset(coord []int) (int, error) {
	if err := l.Check(coord); err != nil {
		return 0, err
	}
	offset := 0
	for d, c := range coord {
		offset += c * l.strides[d]
	}
	return offset, nil
}

// Coordinate returns the coordinate stored at a linear offset.
func (l *RowMajor) Coordinate(offset int) ([]int, error) {
	if offset < 0 || offset >= l.total {
		return nil, fmt.Errorf("%w: offset %d not in [0, %d)", ErrOutOfRange, offset, l.total)
	}
	coord := make([]int, len(l.sizes))
	for d := range coord {
		coord[d] = (offset / l.strides[d]) % l.sizes[d]
	}
	return coord, nil
}

// All enumerates the full cartesian product of category positions in
// lexicographic order. Because the layout is row-major the yielded offsets
// are 0, 1, 2, ... in sequence. Each yielded coordinate is a fresh slice the
// caller may keep.
func (l *RowMajor) All() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		n := len(l.sizes)
		cur := make([]int, n)
		for offset := 0; offset < l.total; offset++ {
			if !yield(offset, append([]int(nil), cur...)) {
				return
			}
			// Odometer increment, innermost dimension first
			for d := n - 1; d >= 0; d-- {
				cur[d]++
				if cur[d] < l.sizes[d] {
					break
				}
				cur[d] = 0
			}
		}
	}
}
