package sfnt

import (
	"encoding/binary"
	"math"

	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/fontops/naming"
)

// Field offsets of the values edited in place.
const (
	os2WeightClassOffset = 4
	os2WidthClassOffset  = 6
	os2FsSelectionOffset = 62

	headRevisionOffset   = 4
	headUnitsPerEmOffset = 18
	headMacStyleOffset   = 44

	postItalicAngleOffset = 4
)

// StyleFlag reads a style flag from OS/2 fsSelection and head macStyle.
// The flag is set when either table has its bit set; missing tables count
// as unset.
func (f *Font) StyleFlag(flag naming.StyleFlag) bool {
	if b, ok := flag.OS2Bit(); ok {
		if v, ok := f.uint16At(tagOS2, os2FsSelectionOffset); ok && v&(1<<b) != 0 {
			return true
		}
	}
	if b, ok := flag.HeadBit(); ok {
		if v, ok := f.uint16At(tagHead, headMacStyleOffset); ok && v&(1<<b) != 0 {
			return true
		}
	}
	return false
}

// StyleFlags returns every style flag.
func (f *Font) StyleFlags() map[naming.StyleFlag]bool {
	out := make(map[naming.StyleFlag]bool)
	for _, flag := range naming.Flags() {
		out[flag] = f.StyleFlag(flag)
	}
	return out
}

// SetStyleFlag writes a style flag into every table that has a bit for it.
func (f *Font) SetStyleFlag(flag naming.StyleFlag, value bool) {
	if b, ok := flag.OS2Bit(); ok {
		f.updateUint16(tagOS2, os2FsSelectionOffset, func(v uint16) uint16 { return setBit(v, b, value) })
	}
	if b, ok := flag.HeadBit(); ok {
		f.updateUint16(tagHead, headMacStyleOffset, func(v uint16) uint16 { return setBit(v, b, value) })
	}
}

// SetStyleFlags applies every non-nil field of u.
func (f *Font) SetStyleFlags(u naming.FlagUpdate) {
	set := u.Set()
	for _, flag := range naming.Flags() {
		if v, ok := set[flag]; ok {
			f.SetStyleFlag(flag, v)
		}
	}
}

// WeightClass returns OS/2 usWeightClass.
func (f *Font) WeightClass() (int, error) {
	v, ok := f.uint16At(tagOS2, os2WeightClassOffset)
	if !ok {
		return 0, tableError("OS/2", "missing or truncated")
	}
	return int(v), nil
}

// SetWeightClass sets OS/2 usWeightClass.
func (f *Font) SetWeightClass(v int) {
	f.updateUint16(tagOS2, os2WeightClassOffset, func(uint16) uint16 { return uint16(clampInt(v, 1, 1000)) })
}

// WidthClass returns OS/2 usWidthClass.
func (f *Font) WidthClass() (int, error) {
	v, ok := f.uint16At(tagOS2, os2WidthClassOffset)
	if !ok {
		return 0, tableError("OS/2", "missing or truncated")
	}
	return int(v), nil
}

// SetWidthClass sets OS/2 usWidthClass.
func (f *Font) SetWidthClass(v int) {
	f.updateUint16(tagOS2, os2WidthClassOffset, func(uint16) uint16 { return uint16(clampInt(v, 1, 9)) })
}

// ItalicAngle returns post.italicAngle in degrees.
func (f *Font) ItalicAngle() (float64, error) {
	data, ok := f.tables[tagPost]
	if !ok || len(data) < postItalicAngleOffset+4 {
		return 0, tableError("post", "missing or truncated")
	}
	return fixedToFloat(binary.BigEndian.Uint32(data[postItalicAngleOffset:])), nil
}

// SetItalicAngle sets post.italicAngle.
func (f *Font) SetItalicAngle(deg float64) {
	data, ok := f.tables[tagPost]
	if !ok || len(data) < postItalicAngleOffset+4 {
		return
	}
	binary.BigEndian.PutUint32(data[postItalicAngleOffset:], floatToFixed(deg))
}

// Revision returns head.fontRevision.
func (f *Font) Revision() (float64, error) {
	data, ok := f.tables[tagHead]
	if !ok || len(data) < headRevisionOffset+4 {
		return 0, tableError("head", "missing or truncated")
	}
	return fixedToFloat(binary.BigEndian.Uint32(data[headRevisionOffset:])), nil
}

// UnitsPerEm returns head.unitsPerEm.
func (f *Font) UnitsPerEm() int {
	v, _ := f.uint16At(tagHead, headUnitsPerEmOffset)
	return int(v)
}

func (f *Font) uint16At(tag opentype.Tag, offset int) (uint16, bool) {
	data, ok := f.tables[tag]
	if !ok || len(data) < offset+2 {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[offset:]), true
}

// updateUint16 rewrites a field in place. Missing or truncated tables are
// left alone.
func (f *Font) updateUint16(tag opentype.Tag, offset int, fn func(uint16) uint16) {
	data, ok := f.tables[tag]
	if !ok || len(data) < offset+2 {
		return
	}
	binary.BigEndian.PutUint16(data[offset:], fn(binary.BigEndian.Uint16(data[offset:])))
}

func setBit(v uint16, b uint, on bool) uint16 {
	if on {
		return v | 1<<b
	}
	return v &^ (1 << b)
}

// fixedToFloat decodes a signed 16.16 Fixed.
func fixedToFloat(v uint32) float64 {
	return float64(int32(v)) / 65536
}

func floatToFixed(v float64) uint32 {
	return uint32(int32(math.Round(v * 65536)))
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
