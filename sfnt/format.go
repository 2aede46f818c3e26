package sfnt

import (
	"fmt"
	"strings"
)

// Format is an on-disk font encoding.
type Format int

const (
	// FormatTTF is an SFNT file with TrueType outlines.
	FormatTTF Format = iota
	// FormatOTF is an SFNT file with CFF or CFF2 outlines.
	FormatOTF
	// FormatWOFF is WOFF 1.0 (zlib-compressed tables).
	FormatWOFF
	// FormatWOFF2 is WOFF 2.0 (brotli-compressed table stream).
	FormatWOFF2
)

// Formats lists every format in declaration order.
var Formats = []Format{FormatTTF, FormatOTF, FormatWOFF, FormatWOFF2}

// String returns the lower-case format name, which is also its file
// extension.
func (f Format) String() string {
	switch f {
	case FormatTTF:
		return "ttf"
	case FormatOTF:
		return "otf"
	case FormatWOFF:
		return "woff"
	case FormatWOFF2:
		return "woff2"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// Compressed reports whether the format is one of the web formats.
func (f Format) Compressed() bool {
	return f == FormatWOFF || f == FormatWOFF2
}

// ParseFormat parses a format name or extension such as "woff2" or ".TTF".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "ttf":
		return FormatTTF, nil
	case "otf":
		return FormatOTF, nil
	case "woff":
		return FormatWOFF, nil
	case "woff2":
		return FormatWOFF2, nil
	}
	return 0, fmt.Errorf("sfnt: unknown format %q", s)
}
