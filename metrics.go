package fontops

import (
	"math"

	"github.com/gogpu/fontops/sfnt"
)

// Weight is an OS/2 weight class with its conventional name.
type Weight struct {
	Value int
	Name  string
}

// Width is an OS/2 width class with its conventional name and the wdth
// axis percentage it corresponds to.
type Width struct {
	Value   int
	Name    string
	Percent float64
}

// ItalicAngle is the post table italic angle, in counter-clockwise degrees
// from the vertical.
type ItalicAngle struct {
	Value float64
}

// Italic reports a forward slant (negative angle).
func (a ItalicAngle) Italic() bool { return a.Value < 0 }

// Backslant reports a backward slant (positive angle).
func (a ItalicAngle) Backslant() bool { return a.Value > 0 }

// Roman reports an upright design.
func (a ItalicAngle) Roman() bool { return a.Value == 0 }

var weightNames = []Weight{
	{50, "Extra-thin"},
	{100, "Thin"},
	{200, "Extra-light"},
	{300, "Light"},
	{400, "Regular"},
	{450, "Book"},
	{500, "Medium"},
	{600, "Semi-bold"},
	{700, "Bold"},
	{800, "Extra-bold"},
	{900, "Black"},
	{950, "Extra-black"},
}

var widthNames = [...]string{
	"Ultra-condensed",
	"Extra-condensed",
	"Condensed",
	"Semi-condensed",
	"Medium",
	"Semi-expanded",
	"Expanded",
	"Extra-expanded",
	"Ultra-expanded",
}

// Weight returns the OS/2 weight class, clamped to 1..1000, named after the
// closest conventional weight. The second result is false without OS/2.
func (f *Font) Weight() (Weight, bool) {
	v, err := f.sf.WeightClass()
	if err != nil {
		return Weight{}, false
	}
	v = min(max(v, 1), 1000)

	best := weightNames[0]
	for _, w := range weightNames[1:] {
		if math.Abs(float64(w.Value-v)) < math.Abs(float64(best.Value-v)) {
			best = w
		}
	}
	return Weight{Value: v, Name: best.Name}, true
}

// Width returns the OS/2 width class, clamped to 1..9. The second result
// is false without OS/2.
func (f *Font) Width() (Width, bool) {
	v, err := f.sf.WidthClass()
	if err != nil {
		return Width{}, false
	}
	v = min(max(v, 1), 9)
	return Width{Value: v, Name: widthNames[v-1], Percent: sfnt.WidthPercents[v-1]}, true
}

// ItalicAngle returns the post table italic angle. The second result is
// false without a post table.
func (f *Font) ItalicAngle() (ItalicAngle, bool) {
	v, err := f.sf.ItalicAngle()
	if err != nil {
		return ItalicAngle{}, false
	}
	return ItalicAngle{Value: v}, true
}

// Version returns the head table font revision, e.g. 1.5.
func (f *Font) Version() (float64, error) {
	v, err := f.sf.Revision()
	if err != nil {
		return 0, &DataError{Op: "version", Err: err}
	}
	return v, nil
}

// VerticalMetrics returns the head, hhea and OS/2 vertical metrics.
func (f *Font) VerticalMetrics() sfnt.VerticalMetrics {
	return f.sf.VerticalMetrics()
}

// SetVerticalMetrics writes m back to head, hhea and OS/2. Read the current
// values with VerticalMetrics and change only the ones to update.
func (f *Font) SetVerticalMetrics(m sfnt.VerticalMetrics) {
	f.sf.SetVerticalMetrics(m)
}

// IsMonospace reports whether the font is flagged fixed pitch or nearly
// all its glyphs share one advance width.
func (f *Font) IsMonospace() bool {
	return f.sf.IsMonospace()
}

// IsColor reports whether the font has color glyph tables.
func (f *Font) IsColor() bool {
	return f.sf.IsColor()
}

// Summary returns an overview of the font: names, glyph count, vertical
// metrics and encoding.
func (f *Font) Summary() (sfnt.Summary, error) {
	s, err := f.sf.Summary()
	if err != nil {
		return sfnt.Summary{}, &DataError{Op: "summary", Err: err}
	}
	return s, nil
}
