package fontops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/gogpu/fontops/naming"
	"github.com/gogpu/fontops/sfnt"
)

// Font is an owned handle over one OpenType or TrueType font.
//
// Every mutating method rewrites tables of this font only. A Font is not
// safe for concurrent use; use Clone to work on copies in parallel.
type Font struct {
	sf        *sfnt.Font
	path      string
	instancer string
}

// Open parses a font from SFNT, WOFF or WOFF2 data.
func Open(data []byte, opts ...Option) (*Font, error) {
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, &DataError{Op: "open", Msg: "unable to parse font", Err: err}
	}
	return newFont(sf, cfg), nil
}

// OpenReader reads all of r and parses it as a font.
func OpenReader(r io.Reader, opts ...Option) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fontops: read font: %w", err)
	}
	return Open(data, opts...)
}

// OpenFile reads and parses the font at path. The path is remembered for
// Save and String.
func OpenFile(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontops: open font: %w", err)
	}
	return Open(data, append([]Option{WithPath(path)}, opts...)...)
}

// OpenCollection parses every font of a TrueType/OpenType collection.
// Plain font files yield a single font.
func OpenCollection(data []byte, opts ...Option) ([]*Font, error) {
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sfs, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, &DataError{Op: "open collection", Msg: "unable to parse collection", Err: err}
	}
	fonts := make([]*Font, len(sfs))
	for i, sf := range sfs {
		fonts[i] = newFont(sf, cfg)
	}
	return fonts, nil
}

func newFont(sf *sfnt.Font, cfg fontConfig) *Font {
	return &Font{sf: sf, path: cfg.path, instancer: cfg.instancer}
}

// Clone returns an independent deep copy of the font.
func (f *Font) Clone() *Font {
	return &Font{sf: f.sf.Clone(), path: f.path, instancer: f.instancer}
}

// Close releases the font tables. The font must not be used afterwards.
func (f *Font) Close() error {
	f.sf = nil
	return nil
}

// SFNT returns the underlying table codec for low-level access.
func (f *Font) SFNT() *sfnt.Font {
	return f.sf
}

// Path returns the file the font was opened from, or "".
func (f *Font) Path() string {
	return f.path
}

// String returns a short description such as Font("fonts/Inter.ttf").
func (f *Font) String() string {
	return fmt.Sprintf("Font(%q)", f.path)
}

// Format returns the format the font was read from. It is also the format
// Save writes.
func (f *Font) Format() sfnt.Format {
	return f.sf.Source()
}

// IsVariable reports whether the font has variation axes.
func (f *Font) IsVariable() bool {
	return f.sf.IsVariable()
}

// IsStatic reports whether the font has no variation axes.
func (f *Font) IsStatic() bool {
	return !f.sf.IsVariable()
}

// Filename returns a file name for the font built from its names.
//
// Static fonts get "Family-Style.ext". Variable fonts get
// "Family-Variable[wght,wdth].ext", with a "-Bold", "-Italic" or
// "-BoldItalic" part when the legacy subfamily says so.
func (f *Font) Filename() string {
	family := removeSpaces(f.FamilyName())
	ext := f.Format().Extension()
	if !f.IsVariable() {
		return joinNonEmpty("-", family, removeSpaces(f.StyleName())) + ext
	}

	base := family
	sub, _ := f.sf.Name(naming.Subfamily)
	switch strings.ToLower(sub) {
	case "bold", "italic", "bold italic":
		base += "-" + removeSpaces(titleCase(sub))
	}
	if !strings.Contains(strings.ToLower(base), "variable") {
		base += "-Variable"
	}
	if axes, err := f.sf.Axes(); err == nil && len(axes) > 0 {
		base += "[" + strings.Join(axes.Tags(), ",") + "]"
	}
	return base + ext
}

// Bytes encodes the font in its source format.
func (f *Font) Bytes() ([]byte, error) {
	return f.encode(f.Format())
}

// Hash returns the XXH3 hash of the font encoded as plain SFNT, so the same
// tables hash equally whatever format they were read from.
func (f *Font) Hash() (uint64, error) {
	data, err := f.encode(f.sf.OutlineFormat())
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(data), nil
}

func (f *Font) encode(format sfnt.Format) ([]byte, error) {
	data, err := f.sf.Encode(format)
	if err != nil {
		if errors.Is(err, sfnt.ErrUnsupported) {
			return nil, &ArgumentError{Op: "encode", Msg: "format " + format.String(), Err: err}
		}
		return nil, &DataError{Op: "encode", Err: err}
	}
	return data, nil
}

func removeSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
