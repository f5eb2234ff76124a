package jsonstat

import (
	"fmt"
	"strconv"
)

// Kind tells which form a cell value takes.
type Kind uint8

const (
	// KindMissing marks a cell with neither a number nor a status code.
	KindMissing Kind = iota
	// KindNumber marks a cell holding a number.
	KindNumber
	// KindStatus marks a cell whose number is null but which carries a
	// status code such as "..".
	KindStatus
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindStatus:
		return "status"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the content of one cell. The zero Value is missing.
type Value struct {
	kind   Kind
	num    float64
	status string
}

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// StatusValue returns a Value holding a status code.
func StatusValue(code string) Value {
	return Value{kind: KindStatus, status: code}
}

// MissingValue returns the missing Value.
func MissingValue() Value {
	return Value{}
}

// Kind returns the form of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Float64 returns the number and true if the value is numeric.
func (v Value) Float64() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// StatusCode returns the status code and true if the value is a status.
func (v Value) StatusCode() (string, bool) {
	return v.status, v.kind == KindStatus
}

// IsMissing reports whether the value is missing.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// String renders numbers in their shortest exact form, status codes
// verbatim and missing values as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindStatus:
		return v.status
	default:
		return ""
	}
}
