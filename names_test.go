package fontops

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fontops/internal/fonttest"
	"github.com/gogpu/fontops/naming"
)

func TestFont_FamilyAndStyleName(t *testing.T) {
	tests := []struct {
		name       string
		names      map[uint16]string
		wantFamily string
		wantStyle  string
	}{
		{
			name:       "legacy only",
			wantFamily: "Test Sans",
			wantStyle:  "Regular",
		},
		{
			name:       "wws over legacy",
			names:      map[uint16]string{21: "Test Sans WWS", 22: "Book"},
			wantFamily: "Test Sans WWS",
			wantStyle:  "Book",
		},
		{
			name:       "typographic over wws",
			names:      map[uint16]string{16: "Test", 17: "Sans Light", 21: "Test Sans WWS", 22: "Book"},
			wantFamily: "Test",
			wantStyle:  "Sans Light",
		},
		{
			name:       "empty typographic ignored",
			names:      map[uint16]string{16: "", 17: ""},
			wantFamily: "Test Sans",
			wantStyle:  "Regular",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := fonttest.StaticOptions()
			o.Names = tt.names
			f := openTest(t, fonttest.Build(o))
			if got := f.FamilyName(); got != tt.wantFamily {
				t.Errorf("FamilyName() = %q, want %q", got, tt.wantFamily)
			}
			if got := f.StyleName(); got != tt.wantStyle {
				t.Errorf("StyleName() = %q, want %q", got, tt.wantStyle)
			}
		})
	}
}

func TestFont_NameByKey(t *testing.T) {
	f := openTest(t, fonttest.Static())

	if got, ok := f.NameByKey("postscript_name"); !ok || got != "TestSans-Regular" {
		t.Errorf("NameByKey(postscript_name) = %q, %v", got, ok)
	}
	if _, ok := f.NameByKey("no_such_key"); ok {
		t.Error("NameByKey(no_such_key) found a record")
	}
	if _, ok := f.NameByKey("typographic_family_name"); ok {
		t.Error("NameByKey(typographic_family_name) found a missing record")
	}
}

func TestFont_SetAndDeleteNames(t *testing.T) {
	f := openTest(t, fonttest.Static())

	if err := f.SetName(naming.Designer, "Jane Doe"); err != nil {
		t.Fatalf("SetName() error = %v", err)
	}
	if got, _ := f.Name(naming.Designer); got != "Jane Doe" {
		t.Errorf("Name(Designer) = %q", got)
	}

	if err := f.DeleteNames(naming.Designer, naming.Version); err != nil {
		t.Fatalf("DeleteNames() error = %v", err)
	}
	names, err := f.Names()
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []naming.NameID{naming.Designer, naming.Version} {
		if _, ok := names[id]; ok {
			t.Errorf("record %v survived DeleteNames", id)
		}
	}
	if names[naming.Family] != "Test Sans" {
		t.Errorf("Names()[Family] = %q", names[naming.Family])
	}
}

func TestFont_Rename(t *testing.T) {
	tests := []struct {
		name   string
		family string
		style  string
		want   map[naming.NameID]string
		flags  map[naming.StyleFlag]bool
	}{
		{
			name:   "ribbi style",
			family: "My Font",
			style:  "bold italic",
			want: map[naming.NameID]string{
				naming.Family:               "My Font",
				naming.Subfamily:            "Bold Italic",
				naming.UniqueID:             "1.000;NONE;MyFont-bolditalic",
				naming.FullName:             "My Font bold italic",
				naming.PostScript:           "MyFont-bolditalic",
				naming.TypographicFamily:    "My Font",
				naming.TypographicSubfamily: "bold italic",
				naming.WWSFamily:            "My Font",
				naming.WWSSubfamily:         "bold italic",
			},
			flags: map[naming.StyleFlag]bool{
				naming.FlagRegular: false,
				naming.FlagBold:    true,
				naming.FlagItalic:  true,
			},
		},
		{
			name:   "non-ribbi style",
			family: "My Font",
			style:  "Light Italic",
			want: map[naming.NameID]string{
				naming.Family:               "My Font Light",
				naming.Subfamily:            "Italic",
				naming.UniqueID:             "1.000;NONE;MyFont-LightItalic",
				naming.FullName:             "My Font Light Italic",
				naming.PostScript:           "MyFont-LightItalic",
				naming.TypographicFamily:    "My Font",
				naming.TypographicSubfamily: "Light Italic",
			},
			flags: map[naming.StyleFlag]bool{
				naming.FlagRegular: false,
				naming.FlagBold:    false,
				naming.FlagItalic:  true,
			},
		},
		{
			name:  "family kept",
			style: "Bold",
			want: map[naming.NameID]string{
				naming.Family:     "Test Sans",
				naming.Subfamily:  "Bold",
				naming.FullName:   "Test Sans Bold",
				naming.PostScript: "TestSans-Bold",
			},
			flags: map[naming.StyleFlag]bool{
				naming.FlagRegular: false,
				naming.FlagBold:    true,
				naming.FlagItalic:  false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := openTest(t, fonttest.Static())
			if err := f.Rename(tt.family, tt.style, true); err != nil {
				t.Fatalf("Rename() error = %v", err)
			}
			got := make(map[naming.NameID]string, len(tt.want))
			for id := range tt.want {
				got[id], _ = f.Name(id)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
			gotFlags := make(map[naming.StyleFlag]bool, len(tt.flags))
			for flag := range tt.flags {
				gotFlags[flag] = f.StyleFlag(flag)
			}
			if diff := cmp.Diff(tt.flags, gotFlags); diff != "" {
				t.Errorf("style flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFont_Rename_TooLong(t *testing.T) {
	f := openTest(t, fonttest.Static())
	before, err := f.Hash()
	if err != nil {
		t.Fatal(err)
	}

	err = f.Rename(strings.Repeat("Long", 20), "Regular", true)
	var aerr *ArgumentError
	if !errors.As(err, &aerr) {
		t.Fatalf("Rename() error = %v, want *ArgumentError", err)
	}
	var lerr *naming.LengthError
	if !errors.As(err, &lerr) {
		t.Errorf("Rename() error = %v, want *naming.LengthError in chain", err)
	}

	if after, _ := f.Hash(); after != before {
		t.Error("font modified by a failed Rename")
	}
}

func TestFont_SetStyleFlagsBySubfamilyName(t *testing.T) {
	tests := []struct {
		subfamily string
		want      map[naming.StyleFlag]bool
	}{
		{"Regular", map[naming.StyleFlag]bool{naming.FlagRegular: true, naming.FlagBold: false, naming.FlagItalic: false}},
		{"Bold", map[naming.StyleFlag]bool{naming.FlagRegular: false, naming.FlagBold: true, naming.FlagItalic: false}},
		{"Italic", map[naming.StyleFlag]bool{naming.FlagRegular: false, naming.FlagBold: false, naming.FlagItalic: true}},
		{"Bold Italic", map[naming.StyleFlag]bool{naming.FlagRegular: false, naming.FlagBold: true, naming.FlagItalic: true}},
		// Unknown subfamilies leave the regular-only flags of the test font.
		{"Semibold", map[naming.StyleFlag]bool{naming.FlagRegular: true, naming.FlagBold: false, naming.FlagItalic: false}},
	}
	for _, tt := range tests {
		t.Run(tt.subfamily, func(t *testing.T) {
			f := openTest(t, fonttest.Static())
			if err := f.SetName(naming.Subfamily, tt.subfamily); err != nil {
				t.Fatal(err)
			}
			f.SetStyleFlagsBySubfamilyName()

			got := make(map[naming.StyleFlag]bool, len(tt.want))
			for flag := range tt.want {
				got[flag] = f.StyleFlag(flag)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("style flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFont_SetStyleFlag(t *testing.T) {
	f := openTest(t, fonttest.Static())

	f.SetStyleFlag(naming.FlagUnderline, true)
	if !f.StyleFlag(naming.FlagUnderline) {
		t.Error("underline not set")
	}
	f.SetStyleFlags(naming.FlagUpdate{Underline: naming.Bool(false), Bold: naming.Bool(true)})
	flags := f.StyleFlags()
	if flags[naming.FlagUnderline] || !flags[naming.FlagBold] {
		t.Errorf("StyleFlags() = %v", flags)
	}
}
