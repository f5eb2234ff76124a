package layout

import "fmt"

// Hyperslab returns the linear offsets of a rectangular selection in
// row-major order. start specifies the first coordinate of the selection and
// count the number of elements per dimension.
func (l *RowMajor) Hyperslab(start, count []int) ([]int, error) {
	ndims := len(l.sizes)
	if len(start) != ndims || len(count) != ndims {
		return nil, fmt.Errorf("%w: selection rank (%d, %d) != layout rank %d",
			ErrOutOfRange, len(start), len(count), ndims)
	}

	total := 1
	for d := 0; d < ndims; d++ {
		if start[d] < 0 || count[d] < 0 || start[d]+count[d] > l.sizes[d] {
			return nil, fmt.Errorf("%w: dimension %d: start=%d + count=%d > size=%d",
				ErrOutOfRange, d, start[d], count[d], l.sizes[d])
		}
		total *= count[d]
	}

	result := make([]int, 0, total)
	if total == 0 {
		return result, nil
	}
	return l.hyperslabRecursive(result, start, count, 0, 0), nil
}

// hyperslabRecursive walks the selection one dimension at a time, emitting
// a contiguous run of offsets at the innermost dimension.
func (l *RowMajor) hyperslabRecursive(dst []int, start, count []int, base, dim int) []int {
	if dim == len(l.sizes)-1 {
		first := base + start[dim]
		for i := 0; i < count[dim]; i++ {
			dst = append(dst, first+i)
		}
		return dst
	}

	for i := 0; i < count[dim]; i++ {
		off := base + (start[dim]+i)*l.strides[dim]
		dst = l.hyperslabRecursive(dst, start, count, off, dim+1)
	}
	return dst
}
