package sfnt

import (
	"encoding/binary"

	"github.com/go-text/typesetting/font/opentype"
)

// VerticalMetrics are the font-wide vertical values of head, hhea and OS/2,
// in font units. Values of missing tables read as zero.
type VerticalMetrics struct {
	UnitsPerEm int
	YMin       int
	YMax       int

	// hhea
	Ascent  int
	Descent int
	LineGap int

	// OS/2
	TypoAscender  int
	TypoDescender int
	TypoLineGap   int
	WinAscent     int
	WinDescent    int
	XHeight       int
	CapHeight     int
}

type verticalField struct {
	metricField
	value func(*VerticalMetrics) *int
}

var verticalFields = []verticalField{
	{metricField{tagHead, headUnitsPerEmOffset, true}, func(m *VerticalMetrics) *int { return &m.UnitsPerEm }},
	{metricField{tagHead, 38, false}, func(m *VerticalMetrics) *int { return &m.YMin }},
	{metricField{tagHead, 42, false}, func(m *VerticalMetrics) *int { return &m.YMax }},
	{metricField{tagHhea, 4, false}, func(m *VerticalMetrics) *int { return &m.Ascent }},
	{metricField{tagHhea, 6, false}, func(m *VerticalMetrics) *int { return &m.Descent }},
	{metricField{tagHhea, 8, false}, func(m *VerticalMetrics) *int { return &m.LineGap }},
	{metricFields["hasc"], func(m *VerticalMetrics) *int { return &m.TypoAscender }},
	{metricFields["hdsc"], func(m *VerticalMetrics) *int { return &m.TypoDescender }},
	{metricFields["hlgp"], func(m *VerticalMetrics) *int { return &m.TypoLineGap }},
	{metricFields["hcla"], func(m *VerticalMetrics) *int { return &m.WinAscent }},
	{metricFields["hcld"], func(m *VerticalMetrics) *int { return &m.WinDescent }},
	{metricFields["xhgt"], func(m *VerticalMetrics) *int { return &m.XHeight }},
	{metricFields["cpht"], func(m *VerticalMetrics) *int { return &m.CapHeight }},
}

// VerticalMetrics reads the vertical metrics.
func (f *Font) VerticalMetrics() VerticalMetrics {
	var m VerticalMetrics
	for _, fl := range verticalFields {
		v, ok := f.uint16At(fl.table, fl.offset)
		if !ok {
			continue
		}
		if fl.unsigned {
			*fl.value(&m) = int(v)
		} else {
			*fl.value(&m) = int(int16(v))
		}
	}
	return m
}

// SetVerticalMetrics writes every value of m to its table. Values are
// clamped to the field range; fields of missing tables are skipped.
func (f *Font) SetVerticalMetrics(m VerticalMetrics) {
	for _, fl := range verticalFields {
		v := *fl.value(&m)
		f.updateUint16(fl.table, fl.offset, func(uint16) uint16 {
			if fl.unsigned {
				return uint16(clampInt(v, 0, 0xFFFF))
			}
			return uint16(int16(clampInt(v, -0x8000, 0x7FFF)))
		})
	}
}

const postIsFixedPitchOffset = 12

// MonospaceThreshold is the share of glyphs with the most common advance
// above which IsMonospace reports true.
const MonospaceThreshold = 0.85

// IsMonospace reports whether post.isFixedPitch is set or at least
// MonospaceThreshold of the glyphs share one advance width.
func (f *Font) IsMonospace() bool {
	if post, ok := f.tables[tagPost]; ok && len(post) >= postIsFixedPitchOffset+4 &&
		binary.BigEndian.Uint32(post[postIsFixedPitchOffset:]) != 0 {
		return true
	}

	numGlyphs, ok := f.uint16At(tagMaxp, 4)
	if !ok || numGlyphs == 0 {
		return false
	}
	numMetrics, ok := f.uint16At(tagHhea, hheaNumberOfHMetricsOffset)
	hmtx := f.tables[tagHmtx]
	if !ok || numMetrics == 0 || len(hmtx) < 4*int(numMetrics) {
		return false
	}

	counts := make(map[uint16]int)
	for i := range int(numMetrics) {
		counts[binary.BigEndian.Uint16(hmtx[4*i:])]++
	}
	// glyphs past numberOfHMetrics repeat the last advance
	if extra := int(numGlyphs) - int(numMetrics); extra > 0 {
		counts[binary.BigEndian.Uint16(hmtx[4*(int(numMetrics)-1):])] += extra
	}
	var most int
	for _, n := range counts {
		most = max(most, n)
	}
	return float64(most)/float64(numGlyphs) >= MonospaceThreshold
}

var colorTables = []opentype.Tag{
	opentype.MustNewTag("COLR"),
	opentype.MustNewTag("CPAL"),
	opentype.MustNewTag("CBDT"),
	opentype.MustNewTag("CBLC"),
	opentype.MustNewTag("sbix"),
	opentype.MustNewTag("SVG "),
}

// IsColor reports whether the font has one of the COLR, CPAL, CBDT, CBLC,
// sbix or SVG tables.
func (f *Font) IsColor() bool {
	for _, tag := range colorTables {
		if f.HasTable(tag) {
			return true
		}
	}
	return false
}
