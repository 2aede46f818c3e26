package fontops

import (
	"errors"

	"github.com/gogpu/fontops/sanitize"
)

// ErrNoPath is returned by Save when neither a path argument nor the path
// the font was opened from is available.
var ErrNoPath = errors.New("fontops: font has no file path")

// ArgumentError reports caller input that violates a precondition:
// malformed or out-of-range coordinates, conflicting options, an unknown
// style name or a PostScript name that would be too long.
//
// An operation failing with ArgumentError has not modified the font.
type ArgumentError struct {
	Op  string
	Msg string
	Err error
}

func (e *ArgumentError) Error() string {
	return wrapMessage("invalid argument", e.Op, e.Msg, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// OperationError reports an operation applied to a font in the wrong state,
// such as pinning a static font.
type OperationError struct {
	Op  string
	Msg string
}

func (e *OperationError) Error() string {
	return wrapMessage("invalid operation", e.Op, e.Msg, nil)
}

// DataError reports font data that cannot serve the requested read.
type DataError struct {
	Op  string
	Msg string
	Err error
}

func (e *DataError) Error() string {
	return wrapMessage("invalid data", e.Op, e.Msg, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// SanitizationError is returned by Font.Sanitize when the OpenType
// Sanitizer rejects the font.
type SanitizationError = sanitize.Error

func wrapMessage(kind, op, msg string, err error) string {
	s := "fontops: " + kind
	if op != "" {
		s += " in " + op
	}
	if msg != "" {
		s += ": " + msg
	}
	if err != nil {
		s += ": " + err.Error()
	}
	return s
}

func argumentError(op string, err error) error {
	return &ArgumentError{Op: op, Err: err}
}
