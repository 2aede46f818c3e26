package sfnt

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/zeebo/xxh3"

	"github.com/gogpu/fontops/internal/cache"
	"github.com/gogpu/fontops/variation"
)

// parsedFonts holds go-text fonts keyed by the XXH3 hash of their SFNT
// data. A font.Font is read-only and shared; each pin builds its own Face.
var parsedFonts = cache.New[uint64, *font.Font](16)

// Tables that only make sense in a variable font.
var variationTables = []opentype.Tag{
	tagAvar, tagCvar, tagFvar, tagGvar, tagHVAR, tagMVAR, tagSTAT, tagVVAR,
}

// simple glyph flags
const (
	flagOnCurve       = 0x01
	flagXShort        = 0x02
	flagYShort        = 0x04
	flagXSameOrPos    = 0x10
	flagYSameOrPos    = 0x20
	flagOverlapSimple = 0x40
)

// Field offsets patched after the outlines are rebuilt.
const (
	hheaAdvanceWidthMaxOffset   = 10
	hheaMinLeftBearingOffset    = 12
	hheaMinRightBearingOffset   = 14
	hheaXMaxExtentOffset        = 16
	hheaNumberOfHMetricsOffset  = 34
	maxpMaxPointsOffset         = 6
	maxpMaxContoursOffset       = 8
	maxpMaxCompositePointsOff   = 10
	maxpMaxCompositeContoursOff = 12
	maxpMaxComponentElemsOffset = 28
	maxpMaxComponentDepthOffset = 30
	headXMinOffset              = 36
	headIndexToLocFormatOffset  = 50
)

// NativeInstancer pins TrueType-flavored variable fonts without external
// tools. Outlines and advances are evaluated at the requested location with
// go-text/typesetting and written back as a static glyf/loca/hmtx set.
//
// MVAR deltas are applied to the OS/2, hhea, vhea and post fields they vary.
// Slicing (keeping an axis variable), CFF2 outlines and variable layout data
// (a GDEF variation store, GSUB or GPOS feature variations) fail with
// ErrUnsupported. Overlap removal is not available either: overlaps are kept
// and a warning is logged.
type NativeInstancer struct{}

// Instantiate implements Instancer.
func (NativeInstancer) Instantiate(ctx context.Context, f *Font, req Request) (*Font, error) {
	if !f.HasTable(tagGlyf) || !f.HasTable(tagLoca) {
		return nil, fmt.Errorf("%w: native instancer needs glyf outlines", ErrUnsupported)
	}
	axes, err := f.Axes()
	if err != nil {
		return nil, err
	}
	loc, err := pinnedLocation(req, axes)
	if err != nil {
		return nil, err
	}
	if err := checkLayoutVariations(f); err != nil {
		return nil, err
	}
	if req.Overlap.Removes() {
		Logger().Warn("sfnt: native instancer cannot remove overlaps, keeping them", "overlap", req.Overlap)
	}

	face, err := faceAt(f, loc, axes)
	if err != nil {
		return nil, err
	}

	maxp, _, err := tables.ParseMaxp(f.tables[tagMaxp])
	if err != nil {
		return nil, &TableError{Tag: "maxp", Err: err}
	}

	b := glyfBuilder{setOverlapFlag: req.Overlap == OverlapKeepAndSetFlags}
	for gid := range int(maxp.NumGlyphs) {
		if gid%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		outline, _ := face.GlyphDataOutline(tables.GlyphID(gid))
		advance := face.HorizontalAdvance(font.GID(gid))
		if err := b.add(outline.Segments, advance); err != nil {
			return nil, fmt.Errorf("sfnt: glyph %d: %w", gid, err)
		}
	}

	out := f.Clone()
	out.tables[tagGlyf] = b.glyf.Bytes()
	out.tables[tagHmtx] = b.hmtx
	b.patch(out)
	if err := applyMetricVariations(out, face.Coords()); err != nil {
		return nil, err
	}

	for _, tag := range variationTables {
		if out.HasTable(tag) {
			Logger().Debug("sfnt: drop variation table", "tag", tag.String())
			out.DeleteTable(tag)
		}
	}
	applyLocationMetadata(out, loc)
	return out, nil
}

// pinnedLocation checks the request pins the whole font and returns the
// full location.
func pinnedLocation(req Request, axes variation.Axes) (variation.Location, error) {
	if !req.Pinned() {
		return nil, fmt.Errorf("%w: native instancer cannot slice axes", ErrUnsupported)
	}
	for _, a := range axes {
		if _, ok := req.Limits[a.Tag]; !ok && !req.Static {
			return nil, fmt.Errorf("%w: native instancer needs every axis pinned, %s is not", ErrUnsupported, a.Tag)
		}
	}
	return variation.Resolve(req.Location(), axes), nil
}

// faceAt loads f with go-text and applies the variation coordinates.
func faceAt(f *Font, loc variation.Location, axes variation.Axes) (*font.Face, error) {
	data := writeSFNT(f.flavor, f.tables)
	ft, err := parsedFonts.GetOrCreate(xxh3.Hash(data), func() (*font.Font, error) {
		ld, err := opentype.NewLoader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return font.NewFont(ld)
	})
	if err != nil {
		return nil, fmt.Errorf("sfnt: native instancer: %w", err)
	}
	face := font.NewFace(ft)

	vars := make([]font.Variation, 0, len(axes))
	for _, a := range axes {
		if len(a.Tag) != 4 {
			return nil, fmt.Errorf("sfnt: native instancer: invalid axis tag %q", a.Tag)
		}
		tag := opentype.MustNewTag(a.Tag)
		vars = append(vars, font.Variation{Tag: tag, Value: float32(loc[a.Tag])})
	}
	face.SetVariations(vars)
	return face, nil
}

type glyphPoint struct {
	x, y int16
	on   bool
}

// glyfBuilder accumulates static glyf, loca (long format) and hmtx data
// together with the font-wide extents needed by head, hhea and maxp.
type glyfBuilder struct {
	setOverlapFlag bool

	glyf bytes.Buffer
	loca []byte
	hmtx []byte

	count                    int
	xMin, yMin, xMax, yMax   int16
	advanceMax               uint16
	minLSB, minRSB, maxXExt  int16
	maxPoints, maxContours   int
	hasBounds, hasHorizontal bool
}

func (b *glyfBuilder) add(segs []opentype.Segment, advance float32) error {
	contours, err := contoursFromSegments(segs)
	if err != nil {
		return err
	}

	b.loca = binary.BigEndian.AppendUint32(b.loca, uint32(b.glyf.Len()))
	adv := uint16(max(0, math.Round(float64(advance))))
	b.advanceMax = max(b.advanceMax, adv)

	var lsb int16
	if len(contours) > 0 {
		xMin, yMin, xMax, yMax := bounds(contours)
		b.writeSimpleGlyph(contours, xMin, yMin, xMax, yMax)
		lsb = xMin

		rsb := int16(int(adv) - int(xMax))
		ext := xMax
		if !b.hasHorizontal {
			b.minLSB, b.minRSB, b.maxXExt = lsb, rsb, ext
			b.hasHorizontal = true
		} else {
			b.minLSB, b.minRSB, b.maxXExt = min(b.minLSB, lsb), min(b.minRSB, rsb), max(b.maxXExt, ext)
		}
		if !b.hasBounds {
			b.xMin, b.yMin, b.xMax, b.yMax = xMin, yMin, xMax, yMax
			b.hasBounds = true
		} else {
			b.xMin, b.yMin = min(b.xMin, xMin), min(b.yMin, yMin)
			b.xMax, b.yMax = max(b.xMax, xMax), max(b.yMax, yMax)
		}
	}

	b.hmtx = binary.BigEndian.AppendUint16(b.hmtx, adv)
	b.hmtx = binary.BigEndian.AppendUint16(b.hmtx, uint16(lsb))
	b.count++
	return nil
}

func (b *glyfBuilder) writeSimpleGlyph(contours [][]glyphPoint, xMin, yMin, xMax, yMax int16) {
	var points int
	endPts := make([]uint16, len(contours))
	for i, c := range contours {
		points += len(c)
		endPts[i] = uint16(points - 1)
	}
	b.maxPoints = max(b.maxPoints, points)
	b.maxContours = max(b.maxContours, len(contours))

	buf := make([]byte, 0, 12+2*len(contours)+5*points)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(contours)))
	for _, v := range []int16{xMin, yMin, xMax, yMax} {
		buf = binary.BigEndian.AppendUint16(buf, uint16(v))
	}
	for _, e := range endPts {
		buf = binary.BigEndian.AppendUint16(buf, e)
	}
	buf = binary.BigEndian.AppendUint16(buf, 0) // instructionLength

	flags := make([]byte, 0, points)
	var xs, ys []byte
	var px, py int16
	for _, c := range contours {
		for _, p := range c {
			var fl byte
			if p.on {
				fl |= flagOnCurve
			}
			if len(flags) == 0 && b.setOverlapFlag {
				fl |= flagOverlapSimple
			}
			fl, xs = appendDelta(fl, xs, int(p.x)-int(px), flagXShort, flagXSameOrPos)
			fl, ys = appendDelta(fl, ys, int(p.y)-int(py), flagYShort, flagYSameOrPos)
			flags = append(flags, fl)
			px, py = p.x, p.y
		}
	}
	buf = append(buf, flags...)
	buf = append(buf, xs...)
	buf = append(buf, ys...)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	b.glyf.Write(buf)
}

// appendDelta encodes one coordinate delta in the smallest glyf form.
func appendDelta(fl byte, out []byte, d int, short, sameOrPos byte) (byte, []byte) {
	switch {
	case d == 0:
		return fl | sameOrPos, out
	case d > -256 && d < 256:
		fl |= short
		if d > 0 {
			fl |= sameOrPos
		} else {
			d = -d
		}
		return fl, append(out, byte(d))
	default:
		return fl, binary.BigEndian.AppendUint16(out, uint16(int16(d)))
	}
}

// patch finishes loca and updates head, hhea and maxp for the new glyphs.
func (b *glyfBuilder) patch(f *Font) {
	b.loca = binary.BigEndian.AppendUint32(b.loca, uint32(b.glyf.Len()))
	f.tables[tagLoca] = b.loca

	if head, ok := f.tables[tagHead]; ok && len(head) >= headIndexToLocFormatOffset+2 {
		for i, v := range []int16{b.xMin, b.yMin, b.xMax, b.yMax} {
			binary.BigEndian.PutUint16(head[headXMinOffset+2*i:], uint16(v))
		}
		binary.BigEndian.PutUint16(head[headIndexToLocFormatOffset:], 1)
	}
	if hhea, ok := f.tables[tagHhea]; ok && len(hhea) >= hheaNumberOfHMetricsOffset+2 {
		binary.BigEndian.PutUint16(hhea[hheaAdvanceWidthMaxOffset:], b.advanceMax)
		binary.BigEndian.PutUint16(hhea[hheaMinLeftBearingOffset:], uint16(b.minLSB))
		binary.BigEndian.PutUint16(hhea[hheaMinRightBearingOffset:], uint16(b.minRSB))
		binary.BigEndian.PutUint16(hhea[hheaXMaxExtentOffset:], uint16(b.maxXExt))
		binary.BigEndian.PutUint16(hhea[hheaNumberOfHMetricsOffset:], uint16(b.count))
	}
	if maxp, ok := f.tables[tagMaxp]; ok && len(maxp) >= maxpMaxComponentDepthOffset+2 {
		binary.BigEndian.PutUint16(maxp[maxpMaxPointsOffset:], uint16(b.maxPoints))
		binary.BigEndian.PutUint16(maxp[maxpMaxContoursOffset:], uint16(b.maxContours))
		for _, off := range []int{
			maxpMaxCompositePointsOff, maxpMaxCompositeContoursOff,
			maxpMaxComponentElemsOffset, maxpMaxComponentDepthOffset,
		} {
			binary.BigEndian.PutUint16(maxp[off:], 0)
		}
	}
}

// contoursFromSegments rebuilds TrueType contours from a decoded outline.
// The closing segment returning to the start point is folded back into the
// first point.
func contoursFromSegments(segs []opentype.Segment) ([][]glyphPoint, error) {
	var contours [][]glyphPoint
	var cur []glyphPoint
	flush := func() {
		if n := len(cur); n > 1 && cur[n-1].on && cur[n-1].x == cur[0].x && cur[n-1].y == cur[0].y {
			cur = cur[:n-1]
		}
		if len(cur) > 0 {
			contours = append(contours, cur)
		}
		cur = nil
	}
	for _, s := range segs {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			flush()
			cur = append(cur, toPoint(s.Args[0], true))
		case opentype.SegmentOpLineTo:
			cur = append(cur, toPoint(s.Args[0], true))
		case opentype.SegmentOpQuadTo:
			cur = append(cur, toPoint(s.Args[0], false), toPoint(s.Args[1], true))
		default:
			return nil, fmt.Errorf("%w: cubic segment in glyf outline", ErrUnsupported)
		}
	}
	flush()
	return contours, nil
}

func toPoint(p opentype.SegmentPoint, on bool) glyphPoint {
	return glyphPoint{x: roundInt16(p.X), y: roundInt16(p.Y), on: on}
}

func roundInt16(v float32) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, math.Round(float64(v)))))
}

func bounds(contours [][]glyphPoint) (xMin, yMin, xMax, yMax int16) {
	xMin, yMin = math.MaxInt16, math.MaxInt16
	xMax, yMax = math.MinInt16, math.MinInt16
	for _, c := range contours {
		for _, p := range c {
			xMin, yMin = min(xMin, p.x), min(yMin, p.y)
			xMax, yMax = max(xMax, p.x), max(yMax, p.y)
		}
	}
	return xMin, yMin, xMax, yMax
}

// applyLocationMetadata mirrors the pinned weight, width and slant into
// OS/2 and post.
func applyLocationMetadata(f *Font, loc variation.Location) {
	if v, ok := loc["wght"]; ok {
		f.SetWeightClass(int(math.Round(v)))
	}
	if v, ok := loc["wdth"]; ok {
		f.SetWidthClass(WidthClassForPercent(v))
	}
	if v, ok := loc["slnt"]; ok {
		f.SetItalicAngle(max(-90, min(90, v)))
	}
}

// WidthPercents are the nominal wdth values of usWidthClass 1 to 9.
var WidthPercents = [...]float64{50, 62.5, 75, 87.5, 100, 112.5, 125, 150, 200}

// WidthClassForPercent maps a wdth axis value to the nearest usWidthClass.
func WidthClassForPercent(pct float64) int {
	best, bestDist := 1, math.Inf(1)
	for i, p := range WidthPercents {
		if d := math.Abs(pct - p); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}
