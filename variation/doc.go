// Package variation models the design space of a variable font and the
// coordinate arithmetic done on it before a font is instanced.
//
// # Overview
//
// The package is pure data and functions; it never touches font binaries.
// A font codec produces [Axes] and [NamedInstance] values, callers produce
// [Coordinates], and the functions here turn those into per-axis [Triple]
// limits (for slicing) or a full [Location] (for pinning):
//
//	axes := variation.Axes{
//	    {Tag: "wght", Min: 100, Default: 400, Max: 900},
//	    {Tag: "wdth", Min: 75, Default: 100, Max: 125},
//	}
//
//	// Pin every axis: wdth falls back to its default.
//	loc, err := variation.NormalizePin(variation.Coordinates{"wght": variation.Value(700)}, axes)
//
//	// Slice: wght keeps a narrowed range, wdth is left untouched.
//	limits, err := variation.NormalizeSlice(variation.Coordinates{"wght": variation.Range(300, 700)}, axes)
//
// # Coordinate Forms
//
// A coordinate is one of four shapes, all implementing [Spec]:
//   - [PinValue]: a single value, min = default = max
//   - [RangeValue]: (min, max), default taken from the axis
//   - [FullRangeValue]: (min, default, max) used verbatim
//   - [Partial]: any of min/default/max, missing ones taken from the axis
//
// The shape is resolved once, by [Spec.Triple]; code past that boundary only
// sees [Triple].
//
// # Named Instances
//
// [Closest] finds the named instance nearest to a location using Euclidean
// distance in user-space axis units. Ties keep the instance declared first.
package variation
