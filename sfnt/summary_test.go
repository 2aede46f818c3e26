package sfnt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/fontops/internal/fonttest"
)

func TestFont_Summary(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Summary
	}{
		{
			name: "static",
			data: fonttest.Static(),
			want: Summary{
				Family:     "Test Sans",
				FullName:   "Test Sans Regular",
				NumGlyphs:  2,
				UnitsPerEm: fonttest.UnitsPerEm,
				Ascent:     800,
				Descent:    200,
				XHeight:    500,
				CapHeight:  fonttest.GlyphTop,
				Format:     FormatTTF,
			},
		},
		{
			name: "variable",
			data: fonttest.Variable(),
			want: Summary{
				Family:     "Test Sans VF",
				FullName:   "Test Sans VF Regular",
				NumGlyphs:  2,
				UnitsPerEm: fonttest.UnitsPerEm,
				Ascent:     800,
				Descent:    200,
				XHeight:    500,
				CapHeight:  fonttest.GlyphTop,
				Format:     FormatTTF,
				Variable:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, tt.data)
			got, err := f.Summary()
			if err != nil {
				t.Fatalf("Summary() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(Summary{}, "Tables", "Size")); diff != "" {
				t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
			}
			if got.Tables != len(f.Tags()) || got.Size != f.Size() {
				t.Errorf("Tables/Size = %d/%d, want %d/%d", got.Tables, got.Size, len(f.Tags()), f.Size())
			}
		})
	}
}

func TestFont_Summary_KeepsSourceFormat(t *testing.T) {
	f := mustParse(t, fonttest.Static())
	data, err := f.Encode(FormatWOFF2)
	if err != nil {
		t.Fatal(err)
	}
	g := mustParse(t, data)
	s, err := g.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if s.Format != FormatWOFF2 {
		t.Errorf("Format = %v, want %v", s.Format, FormatWOFF2)
	}
}
