package jsonstat

import (
	"errors"

	"github.com/robert-malhotra/go-jsonstat/internal/envelope"
	"github.com/robert-malhotra/go-jsonstat/internal/layout"
)

// Common errors
var (
	// ErrMalformedDataset is returned when the input cannot be turned into a
	// Dataset: the envelope is missing, a required field has the wrong shape,
	// or the declared sizes disagree with the value array.
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrUnknownDimension is returned for a dimension id or index that does
	// not exist.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrCoordinateOutOfRange is returned for coordinates of the wrong length
	// or with a component outside its dimension.
	ErrCoordinateOutOfRange = layout.ErrOutOfRange

	// ErrInvalidTableRequest is returned when a pivot table request breaks
	// one of the table preconditions. The message names the rule.
	ErrInvalidTableRequest = errors.New("invalid table request")

	// ErrUnknownCategory is returned when a category id, label or position
	// cannot be resolved within its dimension.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrStopWalk can be returned from a WalkFunc to stop walking without
	// an error.
	ErrStopWalk = errors.New("walk stopped")
)

// DecodeError reports the JSON Pointer of the envelope field that made a
// dataset malformed. Retrieve it with errors.As.
type DecodeError = envelope.DecodeError
