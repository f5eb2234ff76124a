// Package dtype classifies and converts the loosely typed scalars produced by
// JSON and YAML decoders.
//
// A JSON-stat document can reach the module through several decoders: the
// go-json decoder with UseNumber (numbers arrive as json.Number), a caller
// that used encoding/json without UseNumber (float64), or yaml.v3 (int,
// uint64, float64, and sometimes strings for unquoted keys). This package
// hides those differences from the envelope decoder.
//
// # Type Mapping
//
//	Decoded Go value            | Class
//	----------------------------|-------------
//	nil                         | ClassNull
//	string                      | ClassString
//	bool                        | ClassBool
//	map[string]any              | ClassObject
//	[]any                       | ClassArray
//	float*, int*, uint*, Number | ClassNumber
//
// # Key Functions
//
//   - [ClassOf]: classify a decoded value
//   - [Float64]: any number to float64
//   - [Int]: any integral number to int, rejecting fractions and overflow
//   - [String]: strings verbatim, numbers/booleans in canonical text form
//   - [Strings], [Ints]: array conversion with per-element error context
package dtype
