package sfnt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/andybalholm/brotli"
	"github.com/go-text/typesetting/font/opentype"
)

const woff2HeaderSize = 48

// woff2KnownTags are the tags with a one-byte index in the WOFF2 table
// directory.
var woff2KnownTags = [...]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

var woff2TagIndex = func() map[opentype.Tag]byte {
	m := make(map[opentype.Tag]byte, len(woff2KnownTags))
	for i, s := range woff2KnownTags {
		m[opentype.MustNewTag(s)] = byte(i)
	}
	return m
}()

// nullTransform returns the transform version meaning "no transform":
// 3 for glyf and loca, 0 for every other table.
func nullTransform(tag opentype.Tag) byte {
	if tag == tagGlyf || tag == tagLoca {
		return 3
	}
	return 0
}

// encodeWOFF2 writes a WOFF2 file with every table null-transformed.
func encodeWOFF2(flavor opentype.Tag, tables map[opentype.Tag][]byte) ([]byte, error) {
	final := finalizeTables(flavor, tables)
	tags := slices.Sorted(maps.Keys(final))

	var dir bytes.Buffer
	var stream bytes.Buffer
	for _, tag := range tags {
		data := final[tag]
		flags := nullTransform(tag) << 6
		idx, known := woff2TagIndex[tag]
		if known {
			dir.WriteByte(flags | idx)
		} else {
			dir.WriteByte(flags | 0x3F)
			_ = binary.Write(&dir, binary.BigEndian, uint32(tag))
		}
		writeBase128(&dir, uint32(len(data)))
		stream.Write(data)
	}

	var comp bytes.Buffer
	bw := brotli.NewWriterLevel(&comp, brotli.BestCompression)
	if _, err := bw.Write(stream.Bytes()); err != nil {
		return nil, fmt.Errorf("sfnt: woff2: compress: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("sfnt: woff2: compress: %w", err)
	}

	total := pad4(woff2HeaderSize + dir.Len() + comp.Len())
	out := make([]byte, total)
	binary.BigEndian.PutUint32(out[0:], uint32(signatureWOFF2))
	binary.BigEndian.PutUint32(out[4:], uint32(flavor))
	binary.BigEndian.PutUint32(out[8:], uint32(total))
	binary.BigEndian.PutUint16(out[12:], uint16(len(tags)))
	binary.BigEndian.PutUint32(out[16:], uint32(sfntSize(final)))
	binary.BigEndian.PutUint32(out[20:], uint32(comp.Len()))
	binary.BigEndian.PutUint16(out[24:], 1) // majorVersion
	copy(out[woff2HeaderSize:], dir.Bytes())
	copy(out[woff2HeaderSize+dir.Len():], comp.Bytes())
	return out, nil
}

// decodeWOFF2 unpacks a WOFF2 file into SFNT data. Only null-transformed
// tables are supported; transformed glyf, loca and hmtx tables return
// ErrUnsupported.
func decodeWOFF2(data []byte) ([]byte, error) {
	if len(data) < woff2HeaderSize {
		return nil, errors.New("sfnt: woff2: truncated header")
	}
	flavor := opentype.Tag(binary.BigEndian.Uint32(data[4:]))
	if flavor == opentype.MustNewTag("ttcf") {
		return nil, fmt.Errorf("%w: woff2 collections", ErrUnsupported)
	}
	numTables := int(binary.BigEndian.Uint16(data[12:]))
	compressedSize := int(binary.BigEndian.Uint32(data[20:]))

	r := bytes.NewReader(data[woff2HeaderSize:])
	type entry struct {
		tag    opentype.Tag
		length uint32
	}
	entries := make([]entry, 0, numTables)
	for range numTables {
		flags, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("sfnt: woff2: table directory: %w", err)
		}
		var tag opentype.Tag
		if idx := flags & 0x3F; idx == 0x3F {
			var raw uint32
			if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
				return nil, fmt.Errorf("sfnt: woff2: table directory: %w", err)
			}
			tag = opentype.Tag(raw)
		} else if int(idx) < len(woff2KnownTags) {
			tag = opentype.MustNewTag(woff2KnownTags[idx])
		} else {
			return nil, fmt.Errorf("sfnt: woff2: invalid tag index %d", idx)
		}

		version := flags >> 6
		if version != nullTransform(tag) {
			return nil, fmt.Errorf("%w: woff2 transformed %s table", ErrUnsupported, tag)
		}
		length, err := readBase128(r)
		if err != nil {
			return nil, fmt.Errorf("sfnt: woff2: %s length: %w", tag, err)
		}
		entries = append(entries, entry{tag: tag, length: length})
	}

	start := len(data) - r.Len()
	if start+compressedSize > len(data) {
		return nil, errors.New("sfnt: woff2: truncated table data")
	}
	stream, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data[start : start+compressedSize])))
	if err != nil {
		return nil, fmt.Errorf("sfnt: woff2: decompress: %w", err)
	}

	tables := make(map[opentype.Tag][]byte, len(entries))
	offset := 0
	for _, e := range entries {
		end := offset + int(e.length)
		if end > len(stream) {
			return nil, fmt.Errorf("sfnt: woff2: table %s exceeds data", e.tag)
		}
		tables[e.tag] = stream[offset:end]
		offset = end
	}
	return writeSFNT(flavor, tables), nil
}

// writeBase128 writes v as a WOFF2 UIntBase128.
func writeBase128(w *bytes.Buffer, v uint32) {
	var buf [5]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7F)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7F) | 0x80
	}
	w.Write(buf[i:])
}

// readBase128 reads a WOFF2 UIntBase128.
func readBase128(r io.ByteReader) (uint32, error) {
	var v uint32
	for i := range 5 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == 0 && b == 0x80 {
			return 0, errors.New("leading zero in UIntBase128")
		}
		if v&0xFE000000 != 0 {
			return 0, errors.New("UIntBase128 overflow")
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, errors.New("UIntBase128 longer than 5 bytes")
}
