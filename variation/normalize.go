package variation

import (
	"maps"
	"slices"
)

// NormalizeSlice resolves slice coordinates into per-axis limits.
//
// Only the axes named in coords appear in the result; the others are meant
// to be left exactly as declared. A nil Spec pins the axis at its default.
//
// NormalizeSlice fails with ErrNoAxes when coords is empty and with
// ErrAllPinned when coords pins every axis of the font.
func NormalizeSlice(coords Coordinates, axes Axes) (map[string]Triple, error) {
	if len(coords) == 0 {
		return nil, ErrNoAxes
	}

	limits, err := resolve(coords, axes)
	if err != nil {
		return nil, err
	}

	if coversAll(limits, axes) && allPinned(limits) {
		return nil, ErrAllPinned
	}
	return limits, nil
}

// NormalizePin resolves pin coordinates into a location covering every axis.
// Axes missing from coords are pinned at their default value.
//
// NormalizePin fails with ErrNotPinned when a coordinate is a range.
func NormalizePin(coords Coordinates, axes Axes) (Location, error) {
	limits, err := resolve(coords, axes)
	if err != nil {
		return nil, err
	}

	loc := make(Location, len(axes))
	for _, a := range axes {
		t, ok := limits[a.Tag]
		if !ok {
			t = a.DefaultTriple()
		}
		if !t.IsPinned() {
			return nil, &AxisError{Tag: a.Tag, Triple: t, Err: ErrNotPinned}
		}
		loc[a.Tag] = t.Min
	}
	return loc, nil
}

// Resolve returns a copy of loc where every axis missing from it takes the
// axis default.
func Resolve(loc Location, axes Axes) Location {
	out := make(Location, len(axes)+len(loc))
	for _, a := range axes {
		out[a.Tag] = a.Default
	}
	maps.Copy(out, loc)
	return out
}

// resolve turns every coordinate into a validated triple.
// Tags are visited in sorted order so the reported error is deterministic.
func resolve(coords Coordinates, axes Axes) (map[string]Triple, error) {
	limits := make(map[string]Triple, len(coords))
	for _, tag := range slices.Sorted(maps.Keys(coords)) {
		a, ok := axes.ByTag(tag)
		if !ok {
			return nil, &AxisError{Tag: tag, Err: ErrUnknownAxis}
		}

		t := a.DefaultTriple()
		if spec := coords[tag]; spec != nil {
			t = spec.Triple(a)
		}

		if !t.Valid() {
			return nil, &AxisError{Tag: tag, Triple: t, Err: ErrInvalidRange}
		}
		if !a.Contains(t.Min) || !a.Contains(t.Max) {
			return nil, &AxisError{Tag: tag, Triple: t, Err: ErrOutOfRange}
		}
		limits[tag] = t
	}
	return limits, nil
}

func coversAll(limits map[string]Triple, axes Axes) bool {
	for _, a := range axes {
		if _, ok := limits[a.Tag]; !ok {
			return false
		}
	}
	return true
}

func allPinned(limits map[string]Triple) bool {
	for _, t := range limits {
		if !t.IsPinned() {
			return false
		}
	}
	return true
}
