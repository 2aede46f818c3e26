package variation

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Axis is one variation axis of a font, in user-space units.
type Axis struct {
	Tag     string
	Name    string
	Min     float64
	Default float64
	Max     float64

	// Hidden mirrors the HIDDEN_AXIS flag of the fvar axis record.
	Hidden bool
}

// Validate checks Min <= Default <= Max.
func (a Axis) Validate() error {
	if a.Min > a.Default || a.Default > a.Max {
		return &AxisError{Tag: a.Tag, Triple: a.Triple(), Err: ErrInvalidRange}
	}
	return nil
}

// Triple returns the axis bounds as a triple.
func (a Axis) Triple() Triple {
	return Triple{Min: a.Min, Default: a.Default, Max: a.Max}
}

// DefaultTriple returns the axis pinned at its default value.
func (a Axis) DefaultTriple() Triple {
	return Triple{Min: a.Default, Default: a.Default, Max: a.Default}
}

// Contains reports whether v lies within the axis bounds.
func (a Axis) Contains(v float64) bool {
	return v >= a.Min && v <= a.Max
}

// String returns a compact description such as "wght(100,400,900)".
func (a Axis) String() string {
	return fmt.Sprintf("%s(%g,%g,%g)", a.Tag, a.Min, a.Default, a.Max)
}

// Axes is the ordered axis list of a font, as declared in fvar.
type Axes []Axis

// ByTag returns the first axis with the given tag.
func (as Axes) ByTag(tag string) (Axis, bool) {
	for _, a := range as {
		if a.Tag == tag {
			return a, true
		}
	}
	return Axis{}, false
}

// Tags returns the axis tags in declaration order.
// It returns nil when there are no axes.
func (as Axes) Tags() []string {
	if len(as) == 0 {
		return nil
	}
	tags := make([]string, len(as))
	for i, a := range as {
		tags[i] = a.Tag
	}
	return tags
}

// Defaults returns the location of the font's default instance.
func (as Axes) Defaults() Location {
	loc := make(Location, len(as))
	for _, a := range as {
		loc[a.Tag] = a.Default
	}
	return loc
}

// Location is a point in the design space: one user-space value per axis tag.
type Location map[string]float64

// Tags returns the location tags, sorted.
func (l Location) Tags() []string {
	return slices.Sorted(maps.Keys(l))
}

// Clone returns a copy of l.
func (l Location) Clone() Location {
	return maps.Clone(l)
}

// NamedInstance is a point of the design space declared by the font with a
// style name, such as "Bold" or "Condensed Light Italic".
type NamedInstance struct {
	Coordinates    Location
	StyleName      string
	PostScriptName string
}

// registeredAxisNames holds display names of registered and Google Fonts axes.
var registeredAxisNames = map[string]string{
	"ital": "Italic",
	"opsz": "Optical Size",
	"slnt": "Slant",
	"wdth": "Width",
	"wght": "Weight",
	"ARRR": "AR Retinal Resolution",
	"YTAS": "Ascender Height",
	"BLED": "Bleed",
	"BNCE": "Bounce",
	"CASL": "Casual",
	"XTRA": "Counter Width",
	"CRSV": "Cursive",
	"YTDE": "Descender Depth",
	"EHLT": "Edge Highlight",
	"ELGR": "Element Grid",
	"ELSH": "Element Shape",
	"EDPT": "Extrusion Depth",
	"YTFI": "Figure Height",
	"XPRN": "Expression",
	"FILL": "Fill",
	"GRAD": "Grade",
	"HEXP": "Hyper Expansion",
	"INFM": "Informality",
	"YTLC": "Lowercase Height",
	"MONO": "Monospace",
	"MORF": "Morph",
	"XROT": "Rotation in X",
	"YROT": "Rotation in Y",
	"ZROT": "Rotation in Z",
	"ROND": "Roundness",
	"SCAN": "Scanlines",
	"SHLN": "Shadow Length",
	"SHRP": "Sharpness",
	"SOFT": "Softness",
	"SPAC": "Spacing",
	"XOPQ": "Thick Stroke",
	"YOPQ": "Thin Stroke",
	"YTUC": "Uppercase Height",
	"YELA": "Vertical Element Alignment",
	"VOLM": "Volume",
	"WONK": "Wonky",
	"YEAR": "Year",
}

// AxisName returns the display name for a registered axis tag,
// or the title-cased tag for custom axes.
func AxisName(tag string) string {
	if name, ok := registeredAxisNames[tag]; ok {
		return name
	}
	return cases.Title(language.Und).String(tag)
}
