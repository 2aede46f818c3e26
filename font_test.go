package fontops

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/fontops/internal/fonttest"
	"github.com/gogpu/fontops/sfnt"
)

// openTest opens synthetic font data with the native instancer, so results
// do not depend on fontTools being installed.
func openTest(t *testing.T, data []byte, opts ...Option) *Font {
	t.Helper()
	f, err := Open(data, append([]Option{WithInstancer(sfnt.InstancerNative)}, opts...)...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return f
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		variable bool
	}{
		{"static", fonttest.Static(), false},
		{"variable", fonttest.Variable(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := openTest(t, tt.data)
			if f.IsVariable() != tt.variable || f.IsStatic() == tt.variable {
				t.Errorf("IsVariable() = %v, IsStatic() = %v", f.IsVariable(), f.IsStatic())
			}
			if f.Format() != sfnt.FormatTTF {
				t.Errorf("Format() = %v, want ttf", f.Format())
			}
		})
	}
}

func TestOpen_Invalid(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("definitely not a font"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Open(data)
			var derr *DataError
			if !errors.As(err, &derr) {
				t.Errorf("Open() error = %v, want *DataError", err)
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TestSans.ttf")
	if err := os.WriteFile(path, fonttest.Static(), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
	if want := `Font("` + path + `")`; f.String() != want {
		t.Errorf("String() = %q, want %q", f.String(), want)
	}

	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing.ttf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OpenFile(missing) error = %v, want ErrNotExist", err)
	}
}

func TestOpenReader(t *testing.T) {
	f, err := OpenReader(bytes.NewReader(fonttest.Static()))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	if got := f.FamilyName(); got != "Test Sans" {
		t.Errorf("FamilyName() = %q", got)
	}
}

func TestOpenCollection(t *testing.T) {
	fonts, err := OpenCollection(fonttest.Variable())
	if err != nil {
		t.Fatalf("OpenCollection() error = %v", err)
	}
	if len(fonts) != 1 || !fonts[0].IsVariable() {
		t.Errorf("OpenCollection() = %v", fonts)
	}
}

func TestFont_Clone(t *testing.T) {
	f := openTest(t, fonttest.Static())
	c := f.Clone()

	if err := c.SetFamilyName("Other"); err != nil {
		t.Fatal(err)
	}
	if got := f.FamilyName(); got != "Test Sans" {
		t.Errorf("original FamilyName() = %q after renaming the clone", got)
	}
	if got := c.FamilyName(); got != "Other" {
		t.Errorf("clone FamilyName() = %q", got)
	}
}

func TestFont_Filename(t *testing.T) {
	tests := []struct {
		name  string
		build func() fonttest.Options
		want  string
	}{
		{
			name:  "static",
			build: fonttest.StaticOptions,
			want:  "TestSans-Regular.ttf",
		},
		{
			name:  "variable",
			build: fonttest.VariableOptions,
			want:  "TestSansVF-Variable[wght,wdth].ttf",
		},
		{
			name: "variable italic",
			build: func() fonttest.Options {
				o := fonttest.VariableOptions()
				o.Style = "Italic"
				return o
			},
			want: "TestSansVF-Italic-Variable[wght,wdth].ttf",
		},
		{
			name: "variable already suffixed",
			build: func() fonttest.Options {
				o := fonttest.VariableOptions()
				o.Family = "Test Sans Variable"
				return o
			},
			want: "TestSansVariable[wght,wdth].ttf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := openTest(t, fonttest.Build(tt.build()))
			if got := f.Filename(); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFont_Hash(t *testing.T) {
	f := openTest(t, fonttest.Static())
	woff2, err := f.SFNT().Encode(sfnt.FormatWOFF2)
	if err != nil {
		t.Fatal(err)
	}
	g := openTest(t, woff2)
	if g.Format() != sfnt.FormatWOFF2 {
		t.Fatalf("Format() = %v, want woff2", g.Format())
	}

	h1, err := f.Hash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := g.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("Hash() differs across formats: %x != %x", h1, h2)
	}

	if err := g.SetStyleName("Bold"); err != nil {
		t.Fatal(err)
	}
	if h3, _ := g.Hash(); h3 == h1 {
		t.Error("Hash() unchanged after renaming")
	}
}
