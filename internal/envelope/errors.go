package envelope

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is wrapped by every error returned from Decode.
var ErrMalformed = errors.New("malformed JSON-stat envelope")

// DecodeError reports a problem with a specific field of the envelope.
type DecodeError struct {
	Path string // JSON Pointer of the offending field, e.g. /dataset/dimension/size
	Msg  string
	Err  error // optional underlying conversion error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

func errorf(path, format string, args ...any) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

func wrapf(path string, err error, format string, args ...any) error {
	return &DecodeError{Path: path, Msg: fmt.Sprintf(format, args...), Err: err}
}

// pointer joins JSON Pointer segments, escaping '~' and '/'.
func pointer(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString(s)
	}
	return b.String()
}
