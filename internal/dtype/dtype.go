// Package dtype classifies and converts the loosely typed scalars produced by
// JSON and YAML decoders.
package dtype

import "fmt"

// Class is the JSON type class of a decoded value.
type Class uint8

const (
	ClassNull   Class = iota // nil
	ClassNumber              // float64, json.Number, int, uint64, ...
	ClassString              // string
	ClassBool                // bool
	ClassObject              // map[string]any
	ClassArray               // []any
	ClassUnknown
)

var classNames = map[Class]string{
	ClassNull:    "null",
	ClassNumber:  "number",
	ClassString:  "string",
	ClassBool:    "boolean",
	ClassObject:  "object",
	ClassArray:   "array",
	ClassUnknown: "unknown",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// numberText is implemented by encoding/json.Number and go-json's Number.
type numberText interface {
	Float64() (float64, error)
	Int64() (int64, error)
	String() string
}

// ClassOf returns the class of a decoded value.
func ClassOf(v any) Class {
	switch v.(type) {
	case nil:
		return ClassNull
	case string:
		return ClassString
	case bool:
		return ClassBool
	case map[string]any:
		return ClassObject
	case []any:
		return ClassArray
	case float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		numberText:
		return ClassNumber
	default:
		return ClassUnknown
	}
}
