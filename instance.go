package fontops

import (
	"context"
	"fmt"

	"github.com/gogpu/fontops/naming"
	"github.com/gogpu/fontops/sfnt"
	"github.com/gogpu/fontops/variation"
)

// ToSliced narrows the variation space of the font. Every axis named in
// coords gets new limits; a single value pins that axis, and axes not named
// are kept as they are. The font stays variable.
//
// ToSliced fails with *OperationError on a static font and with
// *ArgumentError when coords is empty, pins every axis (use ToStatic), names
// an unknown axis or leaves an axis range. Argument errors leave the font
// unmodified.
//
// Defaults: overlaps kept with the overlap flags set, optimization on, name
// table untouched.
func (f *Font) ToSliced(ctx context.Context, coords variation.Coordinates, opts ...InstanceOption) error {
	const op = "slice"
	if !f.IsVariable() {
		return &OperationError{Op: op, Msg: "only a variable font can be sliced"}
	}
	cfg := defaultSliceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	axes, err := f.Axes()
	if err != nil {
		return err
	}
	limits, err := variation.NormalizeSlice(coords, axes)
	if err != nil {
		return argumentError(op, err)
	}

	req := sfnt.Request{
		Limits:          limits,
		Overlap:         cfg.overlap,
		Optimize:        cfg.optimize,
		UpdateFontNames: cfg.updateFontNames,
		Instancer:       f.instancer,
	}
	Logger().Debug("fontops: slice", "font", f.path, "limits", fmt.Sprint(limits))
	if err := f.sf.Instantiate(ctx, req); err != nil {
		return fmt.Errorf("fontops: slice: %w", err)
	}
	return nil
}

// ToStatic pins every axis of the font, producing a static font.
//
// Axes missing from coords are pinned at their default. With
// WithStyleName the coordinates of that named instance are used instead,
// and coords must be empty.
//
// Unless disabled with WithUpdateNames(false), the font is renamed after
// the named instance closest to the final location. Unless disabled with
// WithUpdateStyleFlags(false), the style bits follow the new subfamily and
// an ital value of 1 or a negative slnt marks the font italic.
//
// ToStatic fails with *OperationError on a static font and with
// *ArgumentError for conflicting or invalid arguments, an unknown style
// name, a range among the coordinates or a PostScript name that would be
// too long. Argument errors leave the font unmodified.
//
// Defaults: overlaps removed, optimization on.
func (f *Font) ToStatic(ctx context.Context, coords variation.Coordinates, opts ...InstanceOption) error {
	const op = "pin"
	if !f.IsVariable() {
		return &OperationError{Op: op, Msg: "only a variable font can be made static"}
	}
	cfg := defaultStaticConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	axes, err := f.Axes()
	if err != nil {
		return err
	}
	instances, err := f.Instances()
	if err != nil {
		return err
	}

	if cfg.styleName != "" {
		if len(coords) > 0 {
			return &ArgumentError{Op: op, Msg: "coordinates and style name are mutually exclusive"}
		}
		inst, ok := variation.FindByStyleName(instances, cfg.styleName, naming.Slug)
		if !ok {
			return &ArgumentError{Op: op, Msg: fmt.Sprintf("instance with style name %q not found", cfg.styleName)}
		}
		coords = variation.Pinned(inst.Coordinates)
	}

	loc, err := variation.NormalizePin(coords, axes)
	if err != nil {
		return argumentError(op, err)
	}

	closest, hasClosest := variation.Closest(loc, instances, axes)
	rename := hasClosest && cfg.updateNames
	var plan naming.Plan
	if rename {
		if plan, err = f.renamePlan("", closest.StyleName); err != nil {
			return err
		}
	}

	limits := make(map[string]variation.Triple, len(loc))
	for tag, v := range loc {
		limits[tag] = variation.Triple{Min: v, Default: v, Max: v}
	}
	req := sfnt.Request{
		Limits:          limits,
		Overlap:         cfg.overlap,
		Optimize:        cfg.optimize,
		UpdateFontNames: cfg.updateFontNames,
		Static:          true,
		Instancer:       f.instancer,
	}
	Logger().Debug("fontops: pin", "font", f.path, "location", fmt.Sprint(loc), "closest", closest.StyleName)
	if err := f.sf.Instantiate(ctx, req); err != nil {
		return fmt.Errorf("fontops: pin: %w", err)
	}

	if rename {
		if err := f.applyRenamePlan(plan, cfg.updateStyleFlags); err != nil {
			return err
		}
	}
	if cfg.updateStyleFlags && italicLocation(loc) {
		f.sf.SetStyleFlags(naming.FlagUpdate{Regular: naming.Bool(false), Italic: naming.Bool(true)})
	}
	return nil
}

// italicLocation reports whether a pinned location selects an italic
// design: ital at 1 or a negative slant.
func italicLocation(loc variation.Location) bool {
	return loc["ital"] == 1 || loc["slnt"] < 0
}
