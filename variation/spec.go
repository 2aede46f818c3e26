package variation

import "fmt"

// Triple is a resolved per-axis limit: the new min, default and max of the
// axis. A triple with Min == Max pins the axis.
type Triple struct {
	Min     float64
	Default float64
	Max     float64
}

// IsPinned reports whether the triple collapses the axis to a single value.
func (t Triple) IsPinned() bool {
	return t.Min == t.Max
}

// Valid reports whether Min <= Default <= Max.
func (t Triple) Valid() bool {
	return t.Min <= t.Default && t.Default <= t.Max
}

// String formats the triple as "(min,default,max)", or "(v)" when pinned.
func (t Triple) String() string {
	if t.IsPinned() {
		return fmt.Sprintf("(%g)", t.Min)
	}
	return fmt.Sprintf("(%g,%g,%g)", t.Min, t.Default, t.Max)
}

// Spec is a caller-supplied coordinate for one axis.
//
// Spec is a closed set: PinValue, RangeValue, FullRangeValue and Partial.
type Spec interface {
	// Triple resolves the coordinate against the axis it refers to.
	Triple(a Axis) Triple

	isSpec()
}

// PinValue pins an axis to a single value.
type PinValue float64

// RangeValue limits an axis to [Min, Max]; the default is taken from the axis.
type RangeValue struct {
	Min, Max float64
}

// FullRangeValue limits an axis to [Min, Max] with an explicit default.
type FullRangeValue struct {
	Min, Default, Max float64
}

// Partial sets any subset of min, default and max; nil fields fall back to
// the axis's own bounds.
type Partial struct {
	Min     *float64
	Default *float64
	Max     *float64
}

// Value returns a Spec pinning an axis at v.
func Value(v float64) Spec { return PinValue(v) }

// Range returns a Spec limiting an axis to [lo, hi].
func Range(lo, hi float64) Spec { return RangeValue{Min: lo, Max: hi} }

// FullRange returns a Spec limiting an axis to [lo, hi] with default def.
func FullRange(lo, def, hi float64) Spec { return FullRangeValue{Min: lo, Default: def, Max: hi} }

// Bound returns a pointer to v, for use in Partial literals.
func Bound(v float64) *float64 { return &v }

func (PinValue) isSpec()       {}
func (RangeValue) isSpec()     {}
func (FullRangeValue) isSpec() {}
func (Partial) isSpec()        {}

// Triple implements Spec.
func (v PinValue) Triple(Axis) Triple {
	f := float64(v)
	return Triple{Min: f, Default: f, Max: f}
}

// Triple implements Spec. The axis default is clamped into the range.
func (r RangeValue) Triple(a Axis) Triple {
	if r.Min == r.Max {
		return Triple{Min: r.Min, Default: r.Min, Max: r.Max}
	}
	return Triple{Min: r.Min, Default: clamp(a.Default, r.Min, r.Max), Max: r.Max}
}

// Triple implements Spec.
func (r FullRangeValue) Triple(Axis) Triple {
	return Triple{Min: r.Min, Default: r.Default, Max: r.Max}
}

// Triple implements Spec. A missing default is clamped into the range.
func (p Partial) Triple(a Axis) Triple {
	t := a.Triple()
	if p.Min != nil {
		t.Min = *p.Min
	}
	if p.Max != nil {
		t.Max = *p.Max
	}
	if p.Default != nil {
		t.Default = *p.Default
	} else if t.Min <= t.Max {
		t.Default = clamp(t.Default, t.Min, t.Max)
	}
	return t
}

// Coordinates maps axis tags to caller-supplied coordinates.
type Coordinates map[string]Spec

// Pinned converts a location into coordinates pinning every listed axis.
func Pinned(loc Location) Coordinates {
	coords := make(Coordinates, len(loc))
	for tag, v := range loc {
		coords[tag] = PinValue(v)
	}
	return coords
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
