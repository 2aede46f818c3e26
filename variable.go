package fontops

import (
	"github.com/gogpu/fontops/naming"
	"github.com/gogpu/fontops/variation"
)

// Axes returns the variation axes of the font in fvar order, or nil for a
// static font.
func (f *Font) Axes() (variation.Axes, error) {
	axes, err := f.sf.Axes()
	if err != nil {
		return nil, &DataError{Op: "axes", Msg: "unreadable fvar table", Err: err}
	}
	return axes, nil
}

// AxisByTag returns the axis with the given tag.
func (f *Font) AxisByTag(tag string) (variation.Axis, bool) {
	axes, err := f.Axes()
	if err != nil {
		return variation.Axis{}, false
	}
	return axes.ByTag(tag)
}

// AxisTags returns the axis tags in fvar order, or nil for a static font.
func (f *Font) AxisTags() []string {
	axes, err := f.Axes()
	if err != nil {
		return nil
	}
	return axes.Tags()
}

// Instances returns the named instances of the font, or nil for a static
// font.
func (f *Font) Instances() ([]variation.NamedInstance, error) {
	instances, err := f.sf.NamedInstances()
	if err != nil {
		return nil, &DataError{Op: "instances", Msg: "unreadable fvar table", Err: err}
	}
	return instances, nil
}

// InstanceByStyleName returns the first named instance whose style name
// matches name, ignoring case, spacing and diacritics.
func (f *Font) InstanceByStyleName(name string) (variation.NamedInstance, bool) {
	instances, err := f.Instances()
	if err != nil {
		return variation.NamedInstance{}, false
	}
	return variation.FindByStyleName(instances, name, naming.Slug)
}

// ClosestInstance returns the named instance nearest to loc. Axes missing
// from loc take their default value. The second result is false for a
// static font or a font without named instances.
func (f *Font) ClosestInstance(loc variation.Location) (variation.NamedInstance, bool) {
	axes, err := f.Axes()
	if err != nil || len(axes) == 0 {
		return variation.NamedInstance{}, false
	}
	instances, err := f.Instances()
	if err != nil {
		return variation.NamedInstance{}, false
	}
	return variation.Closest(loc, instances, axes)
}
