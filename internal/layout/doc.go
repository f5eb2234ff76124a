// Package layout maps n-dimensional coordinates onto a flat row-major array.
//
// JSON-stat flattens an n-dimensional cube into a single value array. The
// dimension order given by the dataset's id list defines the axes: dimension
// 0 is the outermost (slowest varying) axis and dimension n-1 the innermost
// (fastest varying) one. This package owns that arithmetic so the rest of
// the module never computes offsets by hand.
//
// # Strides
//
// For sizes s[0..n-1] the strides are:
//
//	stride[n-1] = 1
//	stride[i]   = stride[i+1] * s[i+1]
//
// and a coordinate c maps to offset = Σ c[i]*stride[i]. The mapping is a
// bijection between the cartesian product of [0, s[i]) and [0, ∏ s[i]).
//
// # Enumeration
//
// [RowMajor.All] walks the cartesian product in lexicographic order using
// an odometer, which is the same order as increasing offsets.
//
// # Hyperslabs
//
// [RowMajor.Hyperslab] returns the offsets of a rectangular selection
// (start/count per dimension). It recurses through the outer dimensions and
// emits a contiguous run of offsets for the innermost one.
//
// # Key Types
//
//   - [RowMajor]: strides, offset/coordinate conversion and enumeration
//   - [ErrOutOfRange]: wrong rank, negative or too large components
package layout
