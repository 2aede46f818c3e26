package sfnt

import (
	"encoding/binary"
	"maps"
	"math/bits"
	"slices"

	"github.com/go-text/typesetting/font/opentype"
)

const (
	sfntHeaderSize = 12
	sfntEntrySize  = 16

	// checksumMagic is the head.checkSumAdjustment base value.
	checksumMagic = 0xB1B0AFBA

	// headChecksumOffset is the offset of checkSumAdjustment within head.
	headChecksumOffset = 8
)

// writeSFNT assembles an SFNT file: sorted table directory, tables aligned
// on 4 bytes, per-table checksums and head.checkSumAdjustment.
func writeSFNT(flavor opentype.Tag, tables map[opentype.Tag][]byte) []byte {
	tags := slices.Sorted(maps.Keys(tables))

	size := sfntHeaderSize + sfntEntrySize*len(tags)
	for _, tag := range tags {
		size += pad4(len(tables[tag]))
	}
	out := make([]byte, size)

	putDirectoryHeader(out, flavor, len(tags))

	offset := sfntHeaderSize + sfntEntrySize*len(tags)
	headOffset := -1
	for i, tag := range tags {
		data := tables[tag]
		if tag == tagHead {
			data = zeroChecksumAdjustment(data)
			headOffset = offset
		}
		entry := out[sfntHeaderSize+i*sfntEntrySize:]
		binary.BigEndian.PutUint32(entry, uint32(tag))
		binary.BigEndian.PutUint32(entry[4:], checksum(data))
		binary.BigEndian.PutUint32(entry[8:], uint32(offset))
		binary.BigEndian.PutUint32(entry[12:], uint32(len(data)))
		copy(out[offset:], data)
		offset += pad4(len(data))
	}

	if headOffset >= 0 && headOffset+headChecksumOffset+4 <= len(out) {
		adj := uint32(checksumMagic) - checksum(out)
		binary.BigEndian.PutUint32(out[headOffset+headChecksumOffset:], adj)
	}
	return out
}

// putDirectoryHeader writes the 12-byte offset table.
func putDirectoryHeader(out []byte, flavor opentype.Tag, numTables int) {
	searchRange, entrySelector, rangeShift := searchParams(numTables, 16)
	binary.BigEndian.PutUint32(out, uint32(flavor))
	binary.BigEndian.PutUint16(out[4:], uint16(numTables))
	binary.BigEndian.PutUint16(out[6:], searchRange)
	binary.BigEndian.PutUint16(out[8:], entrySelector)
	binary.BigEndian.PutUint16(out[10:], rangeShift)
}

// searchParams computes the binary-search hints used by the table
// directory and cmap format 4.
func searchParams(n, unit int) (searchRange, entrySelector, rangeShift uint16) {
	if n == 0 {
		return 0, 0, 0
	}
	log2 := bits.Len(uint(n)) - 1
	sr := (1 << log2) * unit
	return uint16(sr), uint16(log2), uint16(n*unit - sr)
}

// checksum sums data as big-endian uint32 words, zero-padding the tail.
func checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if rem := len(data) - n; rem > 0 {
		var tail [4]byte
		copy(tail[:], data[n:])
		sum += binary.BigEndian.Uint32(tail[:])
	}
	return sum
}

func zeroChecksumAdjustment(head []byte) []byte {
	if len(head) < headChecksumOffset+4 {
		return head
	}
	c := slices.Clone(head)
	binary.BigEndian.PutUint32(c[headChecksumOffset:], 0)
	return c
}

func pad4(n int) int {
	return (n + 3) &^ 3
}
