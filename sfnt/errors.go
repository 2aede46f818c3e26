package sfnt

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sfnt package.
var (
	// ErrEmptyData is returned when parsing an empty buffer.
	ErrEmptyData = errors.New("sfnt: empty font data")

	// ErrMissingTable is returned when a required table is absent.
	ErrMissingTable = errors.New("sfnt: missing table")

	// ErrUnsupported is returned when an instancer or encoder cannot
	// handle the requested operation or font flavor.
	ErrUnsupported = errors.New("sfnt: unsupported operation")

	// ErrUnknownInstancer is returned when no instancer is registered
	// under the requested name.
	ErrUnknownInstancer = errors.New("sfnt: unknown instancer")

	// ErrNotVariable is returned when a variation operation is applied to
	// a font without an fvar table.
	ErrNotVariable = errors.New("sfnt: font is not variable")
)

// TableError reports a table that is present but cannot be decoded.
type TableError struct {
	Tag string
	Err error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("sfnt: table %q: %v", e.Tag, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func tableError(tag string, format string, args ...any) error {
	return &TableError{Tag: tag, Err: fmt.Errorf(format, args...)}
}
