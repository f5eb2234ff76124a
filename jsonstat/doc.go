// Package jsonstat reads JSON-stat datasets and projects them onto pivot
// tables.
//
// A JSON-stat dataset stores its values in one flat array laid out in
// row-major order over its dimensions: dimension 0 varies slowest and the
// last dimension fastest. A [Dataset] decodes the dimension metadata once,
// resolves every cell and then answers read-only queries. It never changes
// after construction and may be shared between goroutines.
//
// # Loading
//
//	ds, err := jsonstat.Open("1052.json.gz")
//	ds, err := jsonstat.Parse(data, jsonstat.WithLocale(language.Norwegian))
//	ds, err := jsonstat.New(tree) // already decoded map[string]any
//
// Compressed input is recognised by its signature. YAML documents with the
// same structure as the JSON form are accepted by [ParseYAML], [Read] and
// [Open].
//
// # Addressing Cells
//
// A coordinate holds one category position per dimension. The linear
// offset of a coordinate c is the sum of c[i]*stride[i], where the last
// stride is 1 and every other stride is the product of the sizes of the
// dimensions after it:
//
//	cell, err := ds.CellAt([]int{0, 0, 9, 1})
//	fmt.Println(cell.Labels, cell.Value)
//
// A cell's [Value] is its number when the value array holds one, otherwise
// the status code recorded for its offset, otherwise missing.
//
// # Pivot Tables
//
// [Dataset.Table] picks one dimension for rows and one for columns. Every
// other dimension is fixed at the category given in the filter map, or at
// its first category:
//
//	grid, err := ds.Table(2, 3, map[int]int{0: 0})
//
// [Dataset.TableByID] accepts dimension and category ids or labels instead
// of positions, and [ParseFilters] reads them from text such as
// "sex=Both sexes,Alder=15-74".
//
// # Errors
//
// Construction fails with [ErrMalformedDataset]; errors.As with
// [*DecodeError] yields the JSON Pointer of the offending field. Queries
// fail with [ErrUnknownDimension], [ErrUnknownCategory],
// [ErrCoordinateOutOfRange] or [ErrInvalidTableRequest].
package jsonstat
