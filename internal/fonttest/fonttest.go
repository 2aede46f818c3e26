// Package fonttest builds small synthetic TrueType fonts for tests.
//
// Every font has two glyphs: .notdef (empty) and "A", a square from
// (100, 0) to (500, 700) with an advance of 600. Variable fonts get an fvar
// table and, when a wght axis exists, a gvar table that moves the right
// edge and the advance of "A" by +100 font units at the wght maximum.
package fonttest

import (
	"encoding/binary"
	"maps"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Glyph geometry of "A".
const (
	GlyphLeft      = 100
	GlyphRight     = 500
	GlyphTop       = 700
	GlyphAdvance   = 600
	VariationShift = 100
	UnitsPerEm     = 1000
)

// Axis is an fvar axis.
type Axis struct {
	Tag               string
	Min, Default, Max float64
	Name              string
	Hidden            bool
}

// Instance is an fvar named instance.
type Instance struct {
	Style      string
	PostScript string
	Coords     map[string]float64
}

// Options describes the font to build.
type Options struct {
	Family string
	Style  string

	// Names adds or overrides name records (Windows English only).
	Names map[uint16]string

	Weight      uint16
	Width       uint16
	FsSelection uint16
	MacStyle    uint16
	ItalicAngle float64
	Revision    float64

	Axes      []Axis
	Instances []Instance

	// MetricDeltas builds an MVAR table: each value tag is moved by its
	// delta at the wght maximum. Ignored without a wght axis.
	MetricDeltas map[string]int8

	// Tables adds raw tables, replacing generated ones with the same tag.
	Tables map[string][]byte
}

// StaticOptions returns a regular static font.
func StaticOptions() Options {
	return Options{
		Family:      "Test Sans",
		Style:       "Regular",
		Weight:      400,
		Width:       5,
		FsSelection: 1 << 6,
		Revision:    1.5,
	}
}

// VariableOptions returns a variable font with wght (100..400..900) and
// wdth (75..100..125) axes and six named instances.
func VariableOptions() Options {
	o := StaticOptions()
	o.Family = "Test Sans VF"
	o.Axes = []Axis{
		{Tag: "wght", Min: 100, Default: 400, Max: 900, Name: "Weight"},
		{Tag: "wdth", Min: 75, Default: 100, Max: 125, Name: "Width"},
	}
	o.Instances = []Instance{
		{Style: "Thin", Coords: map[string]float64{"wght": 100, "wdth": 100}},
		{Style: "Regular", Coords: map[string]float64{"wght": 400, "wdth": 100}, PostScript: "TestSansVF-Regular"},
		{Style: "Bold", Coords: map[string]float64{"wght": 700, "wdth": 100}},
		{Style: "Black", Coords: map[string]float64{"wght": 900, "wdth": 100}},
		{Style: "Condensed Regular", Coords: map[string]float64{"wght": 400, "wdth": 75}},
		{Style: "Condensed Bold", Coords: map[string]float64{"wght": 700, "wdth": 75}},
	}
	return o
}

// Static returns the font built from StaticOptions.
func Static() []byte { return Build(StaticOptions()) }

// Variable returns the font built from VariableOptions.
func Variable() []byte { return Build(VariableOptions()) }

// Build assembles the font described by o.
func Build(o Options) []byte {
	names := map[uint16]string{
		1: o.Family,
		2: o.Style,
		3: "1.000;NONE;" + postScript(o.Family, o.Style),
		4: o.Family + " " + o.Style,
		5: "Version 1.000",
		6: postScript(o.Family, o.Style),
	}
	nextID := uint16(256)
	alloc := func(s string) uint16 {
		for id, v := range names {
			if id >= 256 && v == s {
				return id
			}
		}
		id := nextID
		nextID++
		names[id] = s
		return id
	}

	tables := map[string][]byte{
		"OS/2": os2(o),
		"cmap": cmap(),
		"glyf": glyf(),
		"head": head(o),
		"hhea": hhea(),
		"hmtx": hmtx(),
		"loca": loca(),
		"maxp": maxp(),
		"post": post(o),
	}
	if len(o.Axes) > 0 {
		tables["fvar"] = fvar(o, alloc)
		if gv := gvar(o.Axes); gv != nil {
			tables["gvar"] = gv
		}
		if mv := mvar(o.Axes, o.MetricDeltas); mv != nil {
			tables["MVAR"] = mv
		}
	}
	maps.Copy(tables, o.Tables)
	maps.Copy(names, o.Names)
	tables["name"] = name(names)
	return assemble(tables)
}

func postScript(family, style string) string {
	return strings.ReplaceAll(family, " ", "") + "-" + strings.ReplaceAll(style, " ", "")
}

func assemble(tables map[string][]byte) []byte {
	tags := slices.Sorted(maps.Keys(tables))
	offset := 12 + 16*len(tags)
	out := make([]byte, offset)
	binary.BigEndian.PutUint32(out, 0x00010000)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))
	for i, tag := range tags {
		data := tables[tag]
		e := out[12+16*i:]
		copy(e, tag)
		binary.BigEndian.PutUint32(e[8:], uint32(offset))
		binary.BigEndian.PutUint32(e[12:], uint32(len(data)))
		offset += (len(data) + 3) &^ 3
	}
	for _, tag := range tags {
		data := tables[tag]
		out = append(out, data...)
		out = append(out, make([]byte, ((len(data)+3)&^3)-len(data))...)
	}
	return out
}

func fixed(v float64) uint32 {
	return uint32(int32(math.Round(v * 65536)))
}

type buf []byte

func (b *buf) u16(v uint16) { *b = binary.BigEndian.AppendUint16(*b, v) }
func (b *buf) i16(v int16)  { b.u16(uint16(v)) }
func (b *buf) u32(v uint32) { *b = binary.BigEndian.AppendUint32(*b, v) }

func head(o Options) []byte {
	var b buf
	b.u16(1)
	b.u16(0)
	b.u32(fixed(o.Revision))
	b.u32(0)          // checkSumAdjustment
	b.u32(0x5F0F3CF5) // magicNumber
	b.u16(0x000B)     // flags
	b.u16(UnitsPerEm)
	b = append(b, make([]byte, 16)...) // created, modified
	b.i16(GlyphLeft)
	b.i16(0)
	b.i16(GlyphRight)
	b.i16(GlyphTop)
	b.u16(o.MacStyle)
	b.u16(8) // lowestRecPPEM
	b.i16(2) // fontDirectionHint
	b.i16(1) // indexToLocFormat: long
	b.i16(0)
	return b
}

func hhea() []byte {
	var b buf
	b.u32(0x00010000)
	b.i16(800)  // ascender
	b.i16(-200) // descender
	b.i16(0)    // lineGap
	b.u16(GlyphAdvance)
	b.i16(0)                          // minLeftSideBearing
	b.i16(GlyphAdvance - GlyphRight)  // minRightSideBearing
	b.i16(GlyphRight)                 // xMaxExtent
	b.i16(1)                          // caretSlopeRise
	b.i16(0)                          // caretSlopeRun
	b = append(b, make([]byte, 10)...) // caretOffset, reserved
	b.i16(0)                          // metricDataFormat
	b.u16(2)                          // numberOfHMetrics
	return b
}

func maxp() []byte {
	var b buf
	b.u32(0x00010000)
	b.u16(2) // numGlyphs
	b.u16(4) // maxPoints
	b.u16(1) // maxContours
	b.u16(0)
	b.u16(0)
	b.u16(2) // maxZones
	b = append(b, make([]byte, 16)...)
	return b
}

func os2(o Options) []byte {
	b := make(buf, 96)
	binary.BigEndian.PutUint16(b[0:], 4)
	binary.BigEndian.PutUint16(b[2:], GlyphAdvance)
	binary.BigEndian.PutUint16(b[4:], o.Weight)
	binary.BigEndian.PutUint16(b[6:], o.Width)
	copy(b[58:], "NONE")
	binary.BigEndian.PutUint16(b[62:], o.FsSelection)
	binary.BigEndian.PutUint16(b[64:], 'A')
	binary.BigEndian.PutUint16(b[66:], 'A')
	binary.BigEndian.PutUint16(b[68:], 800)
	binary.BigEndian.PutUint16(b[70:], uint16(0xFFFF-200+1)) // -200
	binary.BigEndian.PutUint16(b[74:], 800)
	binary.BigEndian.PutUint16(b[76:], 200)
	binary.BigEndian.PutUint16(b[86:], 500) // sxHeight
	binary.BigEndian.PutUint16(b[88:], GlyphTop)
	return b
}

func post(o Options) []byte {
	var b buf
	b.u32(0x00030000)
	b.u32(fixed(o.ItalicAngle))
	b.i16(-100)
	b.i16(50)
	b = append(b, make([]byte, 20)...)
	return b
}

// cmap maps 'A' to glyph 1 with a format 4 subtable.
func cmap() []byte {
	var b buf
	b.u16(0)
	b.u16(1)
	b.u16(3)
	b.u16(1)
	b.u32(12)
	b.u16(4)  // format
	b.u16(32) // length
	b.u16(0)  // language
	b.u16(4)  // segCountX2
	b.u16(4)  // searchRange
	b.u16(1)  // entrySelector
	b.u16(0)  // rangeShift
	b.u16('A')
	b.u16(0xFFFF)
	b.u16(0) // reservedPad
	b.u16('A')
	b.u16(0xFFFF)
	b.u16(uint16(1 - 'A' + 0x10000))
	b.u16(1)
	b.u16(0)
	b.u16(0)
	return b
}

// glyf holds an empty .notdef and the square "A", points listed clockwise
// from the bottom-left corner.
func glyf() []byte {
	var b buf
	b.i16(1)
	b.i16(GlyphLeft)
	b.i16(0)
	b.i16(GlyphRight)
	b.i16(GlyphTop)
	b.u16(3) // endPtsOfContours
	b.u16(0) // instructionLength
	b = append(b, 1, 1, 1, 1)
	for _, dx := range []int16{GlyphLeft, 0, GlyphRight - GlyphLeft, 0} {
		b.i16(dx)
	}
	for _, dy := range []int16{0, GlyphTop, 0, -GlyphTop} {
		b.i16(dy)
	}
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func glyfLen() uint32 { return uint32(len(glyf())) }

func loca() []byte {
	var b buf
	b.u32(0)
	b.u32(0)
	b.u32(glyfLen())
	return b
}

func hmtx() []byte {
	var b buf
	b.u16(500)
	b.i16(0)
	b.u16(GlyphAdvance)
	b.i16(GlyphLeft)
	return b
}

func name(names map[uint16]string) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	ids := slices.Sorted(maps.Keys(names))

	var b, storage buf
	b.u16(0)
	b.u16(uint16(len(ids)))
	b.u16(uint16(6 + 12*len(ids)))
	for _, id := range ids {
		raw, err := enc.Bytes([]byte(names[id]))
		if err != nil {
			panic(err)
		}
		b.u16(3)
		b.u16(1)
		b.u16(0x0409)
		b.u16(id)
		b.u16(uint16(len(raw)))
		b.u16(uint16(len(storage)))
		storage = append(storage, raw...)
	}
	return append(b, storage...)
}

func fvar(o Options, alloc func(string) uint16) []byte {
	hasPS := false
	for _, inst := range o.Instances {
		if inst.PostScript != "" {
			hasPS = true
		}
	}
	instanceSize := 4 + 4*len(o.Axes)
	if hasPS {
		instanceSize += 2
	}

	var b buf
	b.u16(1)
	b.u16(0)
	b.u16(16) // axesArrayOffset
	b.u16(2)
	b.u16(uint16(len(o.Axes)))
	b.u16(20)
	b.u16(uint16(len(o.Instances)))
	b.u16(uint16(instanceSize))
	for _, a := range o.Axes {
		b = append(b, a.Tag...)
		b.u32(fixed(a.Min))
		b.u32(fixed(a.Default))
		b.u32(fixed(a.Max))
		var flags uint16
		if a.Hidden {
			flags = 1
		}
		b.u16(flags)
		name := a.Name
		if name == "" {
			name = a.Tag
		}
		b.u16(alloc(name))
	}
	for _, inst := range o.Instances {
		b.u16(alloc(inst.Style))
		b.u16(0)
		for _, a := range o.Axes {
			v, ok := inst.Coords[a.Tag]
			if !ok {
				v = a.Default
			}
			b.u32(fixed(v))
		}
		if hasPS {
			id := uint16(0xFFFF)
			if inst.PostScript != "" {
				id = alloc(inst.PostScript)
			}
			b.u16(id)
		}
	}
	return b
}

// gvar moves the two right points of "A" and its advance phantom point by
// VariationShift at the maximum of the wght axis. It returns nil when the
// font has no wght axis.
func gvar(axes []Axis) []byte {
	wght := slices.IndexFunc(axes, func(a Axis) bool { return a.Tag == "wght" })
	if wght < 0 {
		return nil
	}

	// serialized data: all points, 8 x deltas (4 outline + 4 phantom),
	// 8 zero y deltas
	serialized := []byte{
		0x00,
		0x07, 0, 0, VariationShift, VariationShift, 0, VariationShift, 0, 0,
		0x87,
	}

	var gvd buf
	gvd.u16(1)                          // tupleVariationCount
	gvd.u16(uint16(4 + 4 + 2*len(axes))) // dataOffset
	gvd.u16(uint16(len(serialized)))
	gvd.u16(0x8000 | 0x2000) // embedded peak, private points
	for i := range axes {
		if i == wght {
			gvd.u16(0x4000)
		} else {
			gvd.u16(0)
		}
	}
	gvd = append(gvd, serialized...)

	const glyphCount = 2
	arrayOffset := uint32(20 + 4*(glyphCount+1))

	var b buf
	b.u16(1)
	b.u16(0)
	b.u16(uint16(len(axes)))
	b.u16(0)           // sharedTupleCount
	b.u32(arrayOffset) // sharedTuplesOffset
	b.u16(glyphCount)
	b.u16(1) // long offsets
	b.u32(arrayOffset)
	b.u32(0)
	b.u32(0)
	b.u32(uint32(len(gvd)))
	return append(b, gvd...)
}

// mvar holds one region peaking at the wght maximum and one delta set per
// value tag.
func mvar(axes []Axis, deltas map[string]int8) []byte {
	wght := slices.IndexFunc(axes, func(a Axis) bool { return a.Tag == "wght" })
	if wght < 0 || len(deltas) == 0 {
		return nil
	}
	tags := slices.Sorted(maps.Keys(deltas))

	const headerSize, recordSize = 12, 8
	storeOffset := headerSize + recordSize*len(tags)

	var b buf
	b.u16(1)
	b.u16(0)
	b.u16(0)
	b.u16(recordSize)
	b.u16(uint16(len(tags)))
	b.u16(uint16(storeOffset))
	for i, tag := range tags {
		b = append(b, tag...)
		b.u16(0)         // deltaSetOuter
		b.u16(uint16(i)) // deltaSetInner
	}

	// item variation store
	regionListOffset := uint32(2 + 4 + 2 + 4)
	regionListSize := uint32(4 + 6*len(axes))
	b.u16(1)
	b.u32(regionListOffset)
	b.u16(1)
	b.u32(regionListOffset + regionListSize)

	b.u16(uint16(len(axes)))
	b.u16(1) // regionCount
	for i := range axes {
		if i == wght {
			b.u16(0)
			b.u16(0x4000)
			b.u16(0x4000)
		} else {
			b.u16(0)
			b.u16(0)
			b.u16(0)
		}
	}

	b.u16(uint16(len(tags))) // itemCount
	b.u16(0)                 // wordDeltaCount
	b.u16(1)                 // regionIndexCount
	b.u16(0)
	for _, tag := range tags {
		b = append(b, byte(deltas[tag]))
	}
	return b
}
