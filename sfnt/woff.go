package sfnt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"maps"
	"slices"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/klauspost/compress/zlib"
)

const (
	woffHeaderSize = 44
	woffEntrySize  = 20
)

// encodeWOFF writes a WOFF 1.0 file. Each table is zlib-compressed and
// stored raw when compression does not make it smaller.
func encodeWOFF(flavor opentype.Tag, tables map[opentype.Tag][]byte) ([]byte, error) {
	final := finalizeTables(flavor, tables)
	tags := slices.Sorted(maps.Keys(final))

	type entry struct {
		data     []byte
		origLen  int
		checksum uint32
	}
	entries := make([]entry, len(tags))
	for i, tag := range tags {
		orig := final[tag]
		comp, err := deflate(orig)
		if err != nil {
			return nil, fmt.Errorf("sfnt: woff: compress %s: %w", tag, err)
		}
		if len(comp) >= len(orig) {
			comp = orig
		}
		entries[i] = entry{data: comp, origLen: len(orig), checksum: checksum(orig)}
	}

	offset := woffHeaderSize + woffEntrySize*len(tags)
	total := offset
	for _, e := range entries {
		total += pad4(len(e.data))
	}

	out := make([]byte, total)
	binary.BigEndian.PutUint32(out[0:], uint32(signatureWOFF))
	binary.BigEndian.PutUint32(out[4:], uint32(flavor))
	binary.BigEndian.PutUint32(out[8:], uint32(total))
	binary.BigEndian.PutUint16(out[12:], uint16(len(tags)))
	binary.BigEndian.PutUint32(out[16:], uint32(sfntSize(final)))
	binary.BigEndian.PutUint16(out[20:], 1) // majorVersion
	// metadata and private blocks are not written

	for i, tag := range tags {
		e := entries[i]
		dir := out[woffHeaderSize+i*woffEntrySize:]
		binary.BigEndian.PutUint32(dir[0:], uint32(tag))
		binary.BigEndian.PutUint32(dir[4:], uint32(offset))
		binary.BigEndian.PutUint32(dir[8:], uint32(len(e.data)))
		binary.BigEndian.PutUint32(dir[12:], uint32(e.origLen))
		binary.BigEndian.PutUint32(dir[16:], e.checksum)
		copy(out[offset:], e.data)
		offset += pad4(len(e.data))
	}
	return out, nil
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// finalizeTables returns the tables as they appear in the SFNT encoding,
// with head.checkSumAdjustment computed for that encoding.
func finalizeTables(flavor opentype.Tag, tables map[opentype.Tag][]byte) map[opentype.Tag][]byte {
	out := maps.Clone(tables)
	if _, ok := tables[tagHead]; !ok {
		return out
	}
	data := writeSFNT(flavor, tables)
	n := int(binary.BigEndian.Uint16(data[4:]))
	for i := range n {
		e := data[sfntHeaderSize+i*sfntEntrySize:]
		if opentype.Tag(binary.BigEndian.Uint32(e)) != tagHead {
			continue
		}
		off := binary.BigEndian.Uint32(e[8:])
		length := binary.BigEndian.Uint32(e[12:])
		out[tagHead] = data[off : off+length]
		break
	}
	return out
}

func sfntSize(tables map[opentype.Tag][]byte) int {
	n := sfntHeaderSize + sfntEntrySize*len(tables)
	for _, data := range tables {
		n += pad4(len(data))
	}
	return n
}
