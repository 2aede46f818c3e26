package variation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the normalizer.
var (
	// ErrNoAxes is returned when a slice request names no axis at all.
	ErrNoAxes = errors.New("variation: axes not defined")

	// ErrAllPinned is returned when a slice request pins every axis of the
	// font. Such a request is a pin and must go through Pin instead.
	ErrAllPinned = errors.New("variation: all axes are pinned")

	// ErrNotPinned is returned when a pin request leaves an axis with a range.
	ErrNotPinned = errors.New("variation: all axes must be pinned")

	// ErrUnknownAxis is returned for a coordinate whose tag is not an axis of the font.
	ErrUnknownAxis = errors.New("variation: unknown axis")

	// ErrInvalidRange is returned when min <= default <= max does not hold.
	ErrInvalidRange = errors.New("variation: invalid range")

	// ErrOutOfRange is returned when a value lies outside the axis bounds.
	ErrOutOfRange = errors.New("variation: value out of axis range")
)

// AxisError reports which axis a normalization error refers to.
type AxisError struct {
	Tag    string
	Triple Triple
	Err    error
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Err, e.Tag, e.Triple)
}

func (e *AxisError) Unwrap() error { return e.Err }
