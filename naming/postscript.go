package naming

import (
	"fmt"
	"strings"
)

// MaxPostScriptLength is the maximum length of a PostScript name (name ID 6).
const MaxPostScriptLength = 63

// LengthError is returned when a derived PostScript name is longer than
// MaxPostScriptLength.
type LengthError struct {
	Name   string
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("naming: computed PostScript name exceeds %d characters (%d characters)",
		MaxPostScriptLength, e.Length)
}

// PostScriptName derives the PostScript name for a family and style.
//
// Spaces are removed from both parts, which are then joined with "-".
// Characters outside printable ASCII minus []{}()<>/% and space are replaced
// by "-", runs of "-" are collapsed and leading or trailing "-" trimmed.
func PostScriptName(family, style string) (string, error) {
	joined := joinNonEmpty("-", removeSpaces(family), removeSpaces(style))

	var b strings.Builder
	b.Grow(len(joined))
	dash := false
	for _, r := range joined {
		if !postScriptChar(r) {
			r = '-'
		}
		if r == '-' {
			if dash {
				continue
			}
			dash = true
		} else {
			dash = false
		}
		b.WriteRune(r)
	}

	name := strings.Trim(b.String(), "-")
	if n := len(name); n > MaxPostScriptLength {
		return "", &LengthError{Name: name, Length: n}
	}
	return name, nil
}

// postScriptChar reports whether r may appear in a PostScript name:
// printable ASCII 33-126 except the ten PostScript delimiters.
func postScriptChar(r rune) bool {
	if r < 33 || r > 126 {
		return false
	}
	switch r {
	case '[', ']', '(', ')', '{', '}', '<', '>', '/', '%':
		return false
	}
	return true
}

func removeSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
