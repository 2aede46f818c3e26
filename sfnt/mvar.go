package sfnt

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

var tagVhea = opentype.MustNewTag("vhea")

// metricField locates a font-wide value varied by MVAR.
type metricField struct {
	table    opentype.Tag
	offset   int
	unsigned bool
}

// metricFields maps MVAR value tags to the fields they vary. gasp range
// tags are not listed: pinned fonts keep their gasp ranges.
var metricFields = map[string]metricField{
	"hasc": {tagOS2, 68, false},
	"hdsc": {tagOS2, 70, false},
	"hlgp": {tagOS2, 72, false},
	"hcla": {tagOS2, 74, true},
	"hcld": {tagOS2, 76, true},
	"vasc": {tagVhea, 4, false},
	"vdsc": {tagVhea, 6, false},
	"vlgp": {tagVhea, 8, false},
	"hcrs": {tagHhea, 18, false},
	"hcrn": {tagHhea, 20, false},
	"hcof": {tagHhea, 22, false},
	"vcrs": {tagVhea, 18, false},
	"vcrn": {tagVhea, 20, false},
	"vcof": {tagVhea, 22, false},
	"xhgt": {tagOS2, 86, false},
	"cpht": {tagOS2, 88, false},
	"sbxs": {tagOS2, 10, false},
	"sbys": {tagOS2, 12, false},
	"sbxo": {tagOS2, 14, false},
	"sbyo": {tagOS2, 16, false},
	"spxs": {tagOS2, 18, false},
	"spys": {tagOS2, 20, false},
	"spxo": {tagOS2, 22, false},
	"spyo": {tagOS2, 24, false},
	"strs": {tagOS2, 26, false},
	"stro": {tagOS2, 28, false},
	"undo": {tagPost, 8, false},
	"unds": {tagPost, 10, false},
}

// applyMetricVariations adds the MVAR deltas at the normalized coordinates
// to the fields of f. It does nothing when f has no MVAR table.
func applyMetricVariations(f *Font, coords []tables.Coord) error {
	data, ok := f.tables[tagMVAR]
	if !ok {
		return nil
	}
	mvar, _, err := tables.ParseMVAR(data)
	if err != nil {
		return &TableError{Tag: "MVAR", Err: err}
	}
	for _, rec := range mvar.ValueRecords {
		tag := rec.ValueTag.String()
		field, ok := metricFields[tag]
		if !ok {
			Logger().Debug("sfnt: skip MVAR value", "tag", tag)
			continue
		}
		delta := int(math.Round(float64(mvar.ItemVariationStore.GetDelta(rec.Index, coords))))
		if delta == 0 {
			continue
		}
		f.updateUint16(field.table, field.offset, func(v uint16) uint16 {
			if field.unsigned {
				return uint16(clampInt(int(v)+delta, 0, math.MaxUint16))
			}
			return uint16(int16(clampInt(int(int16(v))+delta, math.MinInt16, math.MaxInt16)))
		})
	}
	return nil
}

// Header offsets of the optional variation data in layout tables.
const (
	gdefItemVarStoreOffset      = 14
	layoutFeatureVariationsOffs = 10
)

var (
	tagGDEF = opentype.MustNewTag("GDEF")
	tagGPOS = opentype.MustNewTag("GPOS")
	tagGSUB = opentype.MustNewTag("GSUB")
)

// checkLayoutVariations fails with ErrUnsupported when GDEF carries an item
// variation store or GSUB/GPOS carry feature variations. Pinning those needs
// the layout tables rewritten, which only fontTools does.
func checkLayoutVariations(f *Font) error {
	if gdef, ok := f.tables[tagGDEF]; ok && minorVersionAtLeast(gdef, 3) &&
		len(gdef) >= gdefItemVarStoreOffset+4 && binary.BigEndian.Uint32(gdef[gdefItemVarStoreOffset:]) != 0 {
		return fmt.Errorf("%w: GDEF item variation store", ErrUnsupported)
	}
	for _, tag := range []opentype.Tag{tagGSUB, tagGPOS} {
		data, ok := f.tables[tag]
		if ok && minorVersionAtLeast(data, 1) &&
			len(data) >= layoutFeatureVariationsOffs+4 && binary.BigEndian.Uint32(data[layoutFeatureVariationsOffs:]) != 0 {
			return fmt.Errorf("%w: %s feature variations", ErrUnsupported, tag)
		}
	}
	return nil
}

// minorVersionAtLeast checks a 1.x table header.
func minorVersionAtLeast(data []byte, minor uint16) bool {
	return len(data) >= 4 && binary.BigEndian.Uint16(data) == 1 && binary.BigEndian.Uint16(data[2:]) >= minor
}
