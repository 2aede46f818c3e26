package sfnt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-text/typesetting/font/opentype"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fontops/internal/fonttest"
)

func mustParse(t *testing.T, data []byte) *Font {
	t.Helper()
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func TestParse(t *testing.T) {
	f := mustParse(t, fonttest.Static())

	if got := f.Source(); got != FormatTTF {
		t.Errorf("Source() = %v, want ttf", got)
	}
	if f.IsVariable() {
		t.Error("IsVariable() = true for a static font")
	}
	for _, tag := range []opentype.Tag{tagHead, tagName, tagOS2, tagGlyf} {
		if !f.HasTable(tag) {
			t.Errorf("HasTable(%s) = false", tag)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptyData},
		{"garbage", []byte("not a font at all"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseCollection_SingleFont(t *testing.T) {
	fonts, err := ParseCollection(fonttest.Static())
	if err != nil {
		t.Fatalf("ParseCollection() error = %v", err)
	}
	if len(fonts) != 1 {
		t.Fatalf("ParseCollection() returned %d fonts, want 1", len(fonts))
	}
}

func TestFont_Clone(t *testing.T) {
	f := mustParse(t, fonttest.Static())
	c := f.Clone()

	c.SetWeightClass(900)
	c.DeleteTable(tagPost)

	if w, _ := f.WeightClass(); w != 400 {
		t.Errorf("original WeightClass() = %d after editing the clone", w)
	}
	if !f.HasTable(tagPost) {
		t.Error("original lost post after deleting it from the clone")
	}
}

func TestFont_Tags(t *testing.T) {
	f := mustParse(t, fonttest.Static())
	tags := f.Tags()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf("Tags() not sorted: %v", tags)
		}
	}
}

func TestEncode_SFNTChecksum(t *testing.T) {
	f := mustParse(t, fonttest.Static())
	data, err := f.Encode(FormatTTF)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if len(data)%4 != 0 {
		t.Errorf("encoded length %d is not 4-byte aligned", len(data))
	}
	if sum := checksum(data); sum != checksumMagic {
		t.Errorf("file checksum = %#x, want %#x", sum, uint32(checksumMagic))
	}

	n := int(binary.BigEndian.Uint16(data[4:]))
	for i := range n {
		e := data[sfntHeaderSize+i*sfntEntrySize:]
		tag := opentype.Tag(binary.BigEndian.Uint32(e))
		off := binary.BigEndian.Uint32(e[8:])
		length := binary.BigEndian.Uint32(e[12:])
		if off%4 != 0 {
			t.Errorf("table %s at unaligned offset %d", tag, off)
		}
		if tag == tagHead {
			continue
		}
		if got, want := binary.BigEndian.Uint32(e[4:]), checksum(data[off:off+length]); got != want {
			t.Errorf("table %s checksum = %#x, want %#x", tag, got, want)
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	f := mustParse(t, fonttest.Variable())

	for _, format := range Formats {
		t.Run(format.String(), func(t *testing.T) {
			data, err := f.Encode(format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			g := mustParse(t, data)

			if format.Compressed() && g.Source() != format {
				t.Errorf("Source() = %v, want %v", g.Source(), format)
			}
			if diff := cmp.Diff(f.Tags(), g.Tags()); diff != "" {
				t.Errorf("tags mismatch (-want +got):\n%s", diff)
			}
			for _, tag := range f.Tags() {
				want, _ := f.Table(tag)
				got, _ := g.Table(tag)
				if tag == tagHead {
					want, got = zeroChecksumAdjustment(want), zeroChecksumAdjustment(got)
				}
				if !bytes.Equal(want, got) {
					t.Errorf("table %s differs after %v round trip", tag, format)
				}
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"ttf", FormatTTF},
		{".OTF", FormatOTF},
		{" woff ", FormatWOFF},
		{"woff2", FormatWOFF2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
			}
		})
	}
	if _, err := ParseFormat("svg"); err == nil {
		t.Error("ParseFormat(svg) should fail")
	}
	if got := FormatWOFF2.Extension(); got != ".woff2" {
		t.Errorf("Extension() = %q", got)
	}
}

func TestSearchParams(t *testing.T) {
	tests := []struct {
		n                   int
		sr, selector, shift uint16
	}{
		{1, 16, 0, 0},
		{9, 128, 3, 16},
		{16, 256, 4, 0},
	}
	for _, tt := range tests {
		sr, sel, shift := searchParams(tt.n, 16)
		if sr != tt.sr || sel != tt.selector || shift != tt.shift {
			t.Errorf("searchParams(%d) = %d,%d,%d, want %d,%d,%d", tt.n, sr, sel, shift, tt.sr, tt.selector, tt.shift)
		}
	}
}
