package sfnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/go-text/typesetting/font/opentype"
)

// Well-known table tags.
var (
	tagAvar = opentype.MustNewTag("avar")
	tagCFF  = opentype.MustNewTag("CFF ")
	tagCFF2 = opentype.MustNewTag("CFF2")
	tagCmap = opentype.MustNewTag("cmap")
	tagCvar = opentype.MustNewTag("cvar")
	tagFvar = opentype.MustNewTag("fvar")
	tagGlyf = opentype.MustNewTag("glyf")
	tagGvar = opentype.MustNewTag("gvar")
	tagHead = opentype.MustNewTag("head")
	tagHhea = opentype.MustNewTag("hhea")
	tagHmtx = opentype.MustNewTag("hmtx")
	tagHVAR = opentype.MustNewTag("HVAR")
	tagLoca = opentype.MustNewTag("loca")
	tagMaxp = opentype.MustNewTag("maxp")
	tagMVAR = opentype.MustNewTag("MVAR")
	tagName = opentype.MustNewTag("name")
	tagOS2  = opentype.MustNewTag("OS/2")
	tagPost = opentype.MustNewTag("post")
	tagSTAT = opentype.MustNewTag("STAT")
	tagVVAR = opentype.MustNewTag("VVAR")

	signatureWOFF  = opentype.MustNewTag("wOFF")
	signatureWOFF2 = opentype.MustNewTag("wOF2")
)

// Font is one SFNT font held as raw tables.
//
// A Font is not safe for concurrent mutation. Use Clone to hand an
// independent copy to another goroutine.
type Font struct {
	flavor opentype.Tag
	source Format
	tables map[opentype.Tag][]byte
}

// Parse reads a single font from SFNT, WOFF or WOFF2 data.
// Collections are rejected; use ParseCollection.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	if len(data) >= 4 && opentype.Tag(binary.BigEndian.Uint32(data)) == signatureWOFF2 {
		raw, err := decodeWOFF2(data)
		if err != nil {
			return nil, err
		}
		f, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		f.source = FormatWOFF2
		return f, nil
	}

	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sfnt: %w", err)
	}
	f, err := fromLoader(ld)
	if err != nil {
		return nil, err
	}
	if opentype.Tag(binary.BigEndian.Uint32(data)) == signatureWOFF {
		f.source = FormatWOFF
	}
	return f, nil
}

// ParseCollection reads every font of a TTC/OTC collection. A plain font
// file yields a single-element slice.
func ParseCollection(data []byte) ([]*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	lds, err := opentype.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sfnt: %w", err)
	}
	fonts := make([]*Font, 0, len(lds))
	for i, ld := range lds {
		f, err := fromLoader(ld)
		if err != nil {
			return nil, fmt.Errorf("sfnt: collection font %d: %w", i, err)
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

func fromLoader(ld *opentype.Loader) (*Font, error) {
	f := &Font{
		flavor: ld.Type,
		tables: make(map[opentype.Tag][]byte),
	}
	for _, tag := range ld.Tables() {
		raw, err := ld.RawTable(tag)
		if err != nil {
			return nil, &TableError{Tag: tag.String(), Err: err}
		}
		f.tables[tag] = slices.Clone(raw)
	}
	if !f.HasTable(tagHead) {
		return nil, fmt.Errorf("%w: head", ErrMissingTable)
	}
	f.source = f.outlineFormat()
	return f, nil
}

// outlineFormat returns the uncompressed format matching the outlines.
func (f *Font) outlineFormat() Format {
	if f.flavor == opentype.OpenType || f.HasTable(tagCFF) || f.HasTable(tagCFF2) {
		return FormatOTF
	}
	return FormatTTF
}

// Clone returns a deep copy of the font.
func (f *Font) Clone() *Font {
	c := &Font{
		flavor: f.flavor,
		source: f.source,
		tables: make(map[opentype.Tag][]byte, len(f.tables)),
	}
	for tag, data := range f.tables {
		c.tables[tag] = slices.Clone(data)
	}
	return c
}

// Source returns the format the font was read from.
func (f *Font) Source() Format {
	return f.source
}

// OutlineFormat returns FormatOTF for CFF-flavored fonts and FormatTTF
// otherwise, independently of the source compression.
func (f *Font) OutlineFormat() Format {
	return f.outlineFormat()
}

// IsVariable reports whether the font has an fvar table.
func (f *Font) IsVariable() bool {
	return f.HasTable(tagFvar)
}

// HasTable reports whether the table tagged tag is present.
func (f *Font) HasTable(tag opentype.Tag) bool {
	_, ok := f.tables[tag]
	return ok
}

// Table returns the raw bytes of a table. The slice is owned by the font.
func (f *Font) Table(tag opentype.Tag) ([]byte, bool) {
	data, ok := f.tables[tag]
	return data, ok
}

// SetTable replaces or adds a table.
func (f *Font) SetTable(tag opentype.Tag, data []byte) {
	f.tables[tag] = data
}

// DeleteTable removes a table if present.
func (f *Font) DeleteTable(tag opentype.Tag) {
	delete(f.tables, tag)
}

// Tags returns the tags of all tables, sorted.
func (f *Font) Tags() []opentype.Tag {
	return slices.Sorted(maps.Keys(f.tables))
}

// Size returns the size of the font as uncompressed SFNT.
func (f *Font) Size() int {
	n := 12 + 16*len(f.tables)
	for _, data := range f.tables {
		n += pad4(len(data))
	}
	return n
}

// Encode serializes the font in the given format.
func (f *Font) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTTF, FormatOTF:
		return writeSFNT(f.flavor, f.tables), nil
	case FormatWOFF:
		return encodeWOFF(f.flavor, f.tables)
	case FormatWOFF2:
		return encodeWOFF2(f.flavor, f.tables)
	}
	return nil, fmt.Errorf("%w: encode %v", ErrUnsupported, format)
}

// table returns a table or a wrapped ErrMissingTable.
func (f *Font) table(tag opentype.Tag) ([]byte, error) {
	data, ok := f.tables[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, tag)
	}
	return data, nil
}

// String returns a short description such as "sfnt.Font(ttf, 14 tables)".
func (f *Font) String() string {
	return fmt.Sprintf("sfnt.Font(%v, %d tables)", f.source, len(f.tables))
}
