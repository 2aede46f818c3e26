package sfnt

import (
	"fmt"

	"golang.org/x/image/font"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Summary is a quick overview of a font, read through golang.org/x/image.
// Vertical metrics are in font units.
type Summary struct {
	Family     string
	FullName   string
	NumGlyphs  int
	UnitsPerEm int

	Ascent    int
	Descent   int
	LineGap   int
	XHeight   int
	CapHeight int

	Format   Format
	Tables   int
	Size     int
	Variable bool
}

// Summary returns an overview of the font.
func (f *Font) Summary() (Summary, error) {
	xf, err := xsfnt.Parse(writeSFNT(f.flavor, f.tables))
	if err != nil {
		return Summary{}, fmt.Errorf("sfnt: summary: %w", err)
	}

	var buf xsfnt.Buffer
	s := Summary{
		NumGlyphs:  xf.NumGlyphs(),
		UnitsPerEm: int(xf.UnitsPerEm()),
		Format:     f.source,
		Tables:     len(f.tables),
		Size:       f.Size(),
		Variable:   f.IsVariable(),
	}
	if name, err := xf.Name(&buf, xsfnt.NameIDFamily); err == nil {
		s.Family = name
	}
	if name, err := xf.Name(&buf, xsfnt.NameIDFull); err == nil {
		s.FullName = name
	}

	// At ppem == unitsPerEm one pixel is one font unit.
	m, err := xf.Metrics(&buf, fixed.I(s.UnitsPerEm), font.HintingNone)
	if err == nil {
		s.Ascent = m.Ascent.Round()
		s.Descent = m.Descent.Round()
		s.LineGap = (m.Height - m.Ascent - m.Descent).Round()
		s.XHeight = m.XHeight.Round()
		s.CapHeight = m.CapHeight.Round()
	}
	return s, nil
}
