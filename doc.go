// Package fontops reads and rewrites OpenType and TrueType fonts.
//
// # Overview
//
// A [Font] is an owned handle over one font binary. It exposes the font's
// names, style flags and metrics, and for variable fonts its axes and named
// instances. The heart of the package is instancing: narrowing the axes of
// a variable font ([Font.ToSliced]) or collapsing it into a static font
// ([Font.ToStatic]) while keeping the name table, the PostScript name and
// the style bits consistent with the result.
//
// # Quick Start
//
//	import "github.com/gogpu/fontops"
//
//	f, err := fontops.OpenFile("Inter[wght,slnt].ttf")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	// Pin every axis: wght at 700, slnt at its default.
//	err = f.ToStatic(ctx, variation.Coordinates{"wght": variation.Value(700)})
//
//	// Or pin at a named instance.
//	err = f.ToStatic(ctx, nil, fontops.WithStyleName("Bold"))
//
//	_, err = f.SaveAs("out/", sfnt.FormatWOFF2, true)
//
// # Coordinates
//
// Coordinates map axis tags to a [variation.Spec]: a single value pins the
// axis, a range keeps it variable within new bounds. Values outside the
// declared axis range are rejected with an [*ArgumentError]; nothing is
// clamped.
//
// # Instancers
//
// The table rewrite itself is delegated to an [sfnt.Instancer]. The default
// "auto" instancer runs fontTools when it is installed and falls back to a
// pure Go instancer that can pin TrueType-flavored fonts. See
// [WithInstancer].
//
// # Concurrency
//
// A Font is not safe for concurrent use. [Font.Clone] returns an independent
// copy that may be handed to another goroutine.
package fontops

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
