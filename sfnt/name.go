package sfnt

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"maps"
	"slices"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/gogpu/fontops/naming"
)

// Platform, encoding and language IDs of the two records kept in sync by
// SetName.
const (
	PlatformUnicode   uint16 = 0
	PlatformMac       uint16 = 1
	PlatformMicrosoft uint16 = 3

	encodingMacRoman     uint16 = 0
	encodingWindowsBMP   uint16 = 1
	languageMacEnglish   uint16 = 0
	languageWindowsUSEng uint16 = 0x0409
)

// NameRecord is one decoded record of the name table.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     naming.NameID
	Value      string

	// raw keeps the original bytes of records whose encoding is not
	// supported, so they are written back unchanged.
	raw []byte
}

func (r NameRecord) key() [4]uint16 {
	return [4]uint16{r.PlatformID, r.EncodingID, r.LanguageID, uint16(r.NameID)}
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// recordEncoding returns the text encoding of a platform/encoding pair,
// or nil when it is not supported.
func recordEncoding(platform, enc uint16) encoding.Encoding {
	switch platform {
	case PlatformUnicode:
		return utf16BE
	case PlatformMicrosoft:
		if enc == 0 || enc == 1 || enc == 10 {
			return utf16BE
		}
	case PlatformMac:
		if enc == encodingMacRoman {
			return charmap.Macintosh
		}
	}
	return nil
}

// parseNameTable decodes every record of a name table (format 0 or 1;
// format 1 language-tag records are ignored).
func parseNameTable(data []byte) ([]NameRecord, error) {
	if len(data) < 6 {
		return nil, tableError("name", "truncated header")
	}
	count := int(binary.BigEndian.Uint16(data[2:]))
	storage := int(binary.BigEndian.Uint16(data[4:]))
	if len(data) < 6+12*count {
		return nil, tableError("name", "truncated records")
	}

	records := make([]NameRecord, 0, count)
	for i := range count {
		rec := data[6+12*i:]
		r := NameRecord{
			PlatformID: binary.BigEndian.Uint16(rec[0:]),
			EncodingID: binary.BigEndian.Uint16(rec[2:]),
			LanguageID: binary.BigEndian.Uint16(rec[4:]),
			NameID:     naming.NameID(binary.BigEndian.Uint16(rec[6:])),
		}
		length := int(binary.BigEndian.Uint16(rec[8:]))
		offset := storage + int(binary.BigEndian.Uint16(rec[10:]))
		if offset+length > len(data) {
			Logger().Debug("sfnt: name record out of bounds", "nameID", r.NameID)
			continue
		}
		raw := data[offset : offset+length]
		if enc := recordEncoding(r.PlatformID, r.EncodingID); enc != nil {
			s, err := enc.NewDecoder().Bytes(raw)
			if err == nil {
				r.Value = string(s)
				records = append(records, r)
				continue
			}
		}
		r.raw = slices.Clone(raw)
		r.Value = string(raw)
		records = append(records, r)
	}
	return records, nil
}

// encodeNameTable writes records as a format 0 name table. Records are
// sorted by platform, encoding, language and name ID; identical strings
// share storage.
func encodeNameTable(records []NameRecord) []byte {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b NameRecord) int {
		ka, kb := a.key(), b.key()
		for i := range ka {
			if c := cmp.Compare(ka[i], kb[i]); c != 0 {
				return c
			}
		}
		return 0
	})

	type stored struct{ offset, length int }
	var storage bytes.Buffer
	seen := make(map[string]stored)
	header := make([]byte, 6+12*len(sorted))
	binary.BigEndian.PutUint16(header[2:], uint16(len(sorted)))
	binary.BigEndian.PutUint16(header[4:], uint16(len(header)))

	for i, r := range sorted {
		raw := r.raw
		if raw == nil {
			raw = encodeNameValue(r)
		}
		s, ok := seen[string(raw)]
		if !ok {
			s = stored{offset: storage.Len(), length: len(raw)}
			storage.Write(raw)
			seen[string(raw)] = s
		}
		rec := header[6+12*i:]
		binary.BigEndian.PutUint16(rec[0:], r.PlatformID)
		binary.BigEndian.PutUint16(rec[2:], r.EncodingID)
		binary.BigEndian.PutUint16(rec[4:], r.LanguageID)
		binary.BigEndian.PutUint16(rec[6:], uint16(r.NameID))
		binary.BigEndian.PutUint16(rec[8:], uint16(s.length))
		binary.BigEndian.PutUint16(rec[10:], uint16(s.offset))
	}
	return append(header, storage.Bytes()...)
}

func encodeNameValue(r NameRecord) []byte {
	enc := recordEncoding(r.PlatformID, r.EncodingID)
	if enc == nil {
		return []byte(r.Value)
	}
	b, err := enc.NewEncoder().Bytes([]byte(r.Value))
	if err != nil {
		return []byte(r.Value)
	}
	return b
}

// NameRecords returns every decoded record of the name table.
func (f *Font) NameRecords() ([]NameRecord, error) {
	data, err := f.table(tagName)
	if err != nil {
		return nil, err
	}
	return parseNameTable(data)
}

// Name returns the value of a name record. The Windows English record is
// preferred, then the Mac Roman English one, then any Unicode or Windows
// record with the same ID.
func (f *Font) Name(id naming.NameID) (string, bool) {
	records, err := f.NameRecords()
	if err != nil {
		return "", false
	}
	return lookupName(records, id)
}

func lookupName(records []NameRecord, id naming.NameID) (string, bool) {
	preferred := [][3]uint16{
		{PlatformMicrosoft, encodingWindowsBMP, languageWindowsUSEng},
		{PlatformMac, encodingMacRoman, languageMacEnglish},
	}
	for _, p := range preferred {
		for _, r := range records {
			if r.NameID == id && r.PlatformID == p[0] && r.EncodingID == p[1] && r.LanguageID == p[2] && r.raw == nil {
				return r.Value, true
			}
		}
	}
	for _, r := range records {
		if r.NameID == id && r.raw == nil && (r.PlatformID == PlatformMicrosoft || r.PlatformID == PlatformUnicode) {
			return r.Value, true
		}
	}
	return "", false
}

// Names returns the preferred value of every name ID present.
func (f *Font) Names() (map[naming.NameID]string, error) {
	records, err := f.NameRecords()
	if err != nil {
		return nil, err
	}
	out := make(map[naming.NameID]string)
	for _, r := range records {
		if _, done := out[r.NameID]; done {
			continue
		}
		if v, ok := lookupName(records, r.NameID); ok {
			out[r.NameID] = v
		}
	}
	return out, nil
}

// SetNames writes the given records for the Windows English and Mac Roman
// English platforms, adding records that do not exist yet. Values that
// cannot be encoded in Mac Roman only get a Windows record. A missing name
// table is created.
func (f *Font) SetNames(names map[naming.NameID]string) error {
	var records []NameRecord
	if data, ok := f.tables[tagName]; ok {
		var err error
		if records, err = parseNameTable(data); err != nil {
			return err
		}
	}

	for _, id := range slices.Sorted(maps.Keys(names)) {
		value := names[id]
		records = upsertName(records, NameRecord{
			PlatformID: PlatformMicrosoft, EncodingID: encodingWindowsBMP,
			LanguageID: languageWindowsUSEng, NameID: id, Value: value,
		})
		mac := NameRecord{
			PlatformID: PlatformMac, EncodingID: encodingMacRoman,
			LanguageID: languageMacEnglish, NameID: id, Value: value,
		}
		if _, err := charmap.Macintosh.NewEncoder().String(value); err != nil {
			Logger().Debug("sfnt: name not encodable in Mac Roman", "nameID", id)
			records = removeName(records, mac.key())
			continue
		}
		records = upsertName(records, mac)
	}

	f.tables[tagName] = encodeNameTable(records)
	return nil
}

// SetName writes a single name record; see SetNames.
func (f *Font) SetName(id naming.NameID, value string) error {
	return f.SetNames(map[naming.NameID]string{id: value})
}

// DeleteNames removes every record with one of the given IDs.
func (f *Font) DeleteNames(ids ...naming.NameID) error {
	records, err := f.NameRecords()
	if err != nil {
		return err
	}
	records = slices.DeleteFunc(records, func(r NameRecord) bool {
		return slices.Contains(ids, r.NameID)
	})
	f.tables[tagName] = encodeNameTable(records)
	return nil
}

func upsertName(records []NameRecord, rec NameRecord) []NameRecord {
	k := rec.key()
	for i := range records {
		if records[i].key() == k {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}

func removeName(records []NameRecord, k [4]uint16) []NameRecord {
	return slices.DeleteFunc(records, func(r NameRecord) bool { return r.key() == k })
}
