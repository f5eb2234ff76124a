// Package envelope decodes a parsed JSON-stat document into typed metadata.
//
// The input is the generic tree produced by a JSON or YAML decoder
// (map[string]any / []any / scalars). The output is an [Envelope] holding
// the dataset metadata, the ordered dimension list with categories sorted
// by their category index, the dense value array and the status codes
// keyed by offset. Every shape problem is reported immediately as a
// [*DecodeError] carrying the JSON Pointer of the offending field; all of
// them wrap [ErrMalformed].
//
// # Accepted Shapes
//
//	dataset.dimension.id                array of strings (unique, non-empty)
//	dataset.dimension.size              array of integers >= 1, same length
//	dataset.dimension.<id>.label        optional string (defaults to id)
//	dataset.dimension.<id>.category     object, required
//	  .index                            object id->position, or array of ids;
//	                                    optional for single-category dimensions
//	  .label                            optional object id->label (defaults to id)
//	dataset.dimension.role              optional object role->[]id
//	dataset.value                       array (nullable) or object offset->number
//	dataset.status                      optional object, array or single string
//	dataset.label, dataset.source       optional strings
//	dataset.updated                     optional RFC3339 or YYYY-MM-DD
//
// # Category Order
//
// The position of a category along its dimension is taken from
// category.index, never from the iteration order of the label object.
// Positions must form a permutation of 0..size-1.
//
// # Key Types
//
//   - [Envelope]: decoded dataset
//   - [Dimension], [Category]: ordered dimension metadata
//   - [Number]: nullable numeric value
//   - [DecodeError]: field-level decode failure
package envelope
