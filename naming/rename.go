package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ribbi lists the legacy subfamily names, lower-cased.
var ribbi = []string{"regular", "italic", "bold", "bold italic"}

// Plan is the consistent set of name records for a family and style.
type Plan struct {
	// Family and Subfamily are the legacy records 1 and 2.
	Family    string
	Subfamily string

	UniqueID   string
	FullName   string
	PostScript string

	// TypographicFamily and TypographicSubfamily are records 16 and 17;
	// the WWS records 21 and 22 carry the same values.
	TypographicFamily    string
	TypographicSubfamily string
}

// NewPlan computes the name records for renaming a font to family and style.
//
// oldPostScript and oldUniqueID are the font's current records 6 and 3:
// occurrences of the old PostScript name inside the unique identifier are
// replaced with the new one. NewPlan fails with *LengthError when the derived
// PostScript name is too long.
func NewPlan(family, style, oldPostScript, oldUniqueID string) (Plan, error) {
	family = strings.TrimSpace(family)
	style = strings.TrimSpace(style)

	ps, err := PostScriptName(family, style)
	if err != nil {
		return Plan{}, err
	}

	legacyFamily, legacySubfamily := Legacy(family, style)

	uniqueID := oldUniqueID
	if oldPostScript != "" {
		uniqueID = strings.ReplaceAll(oldUniqueID, oldPostScript, ps)
	}

	return Plan{
		Family:               legacyFamily,
		Subfamily:            legacySubfamily,
		UniqueID:             uniqueID,
		FullName:             joinNonEmpty(" ", family, style),
		PostScript:           ps,
		TypographicFamily:    family,
		TypographicSubfamily: style,
	}, nil
}

// Records returns the plan as name records keyed by ID.
func (p Plan) Records() map[NameID]string {
	return map[NameID]string{
		Family:               p.Family,
		Subfamily:            p.Subfamily,
		UniqueID:             p.UniqueID,
		FullName:             p.FullName,
		PostScript:           p.PostScript,
		TypographicFamily:    p.TypographicFamily,
		TypographicSubfamily: p.TypographicSubfamily,
		WWSFamily:            p.TypographicFamily,
		WWSSubfamily:         p.TypographicSubfamily,
	}
}

// Legacy maps a typographic family and style onto legacy records 1 and 2.
//
// RIBBI styles are kept (title-cased). Any other style is appended to the
// family name, minus a trailing " Italic", and the subfamily becomes
// "Italic" when the style mentions italic, "Regular" otherwise.
func Legacy(family, style string) (legacyFamily, legacySubfamily string) {
	lower := strings.ToLower(style)
	title := cases.Title(language.Und)

	for _, s := range ribbi {
		if lower == s {
			return family, title.String(lower)
		}
	}

	suffix := style
	if strings.HasSuffix(lower, " italic") {
		suffix = style[:len(style)-len(" italic")]
	}
	legacyFamily = family
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		legacyFamily = family + " " + suffix
	}

	legacySubfamily = "Regular"
	if strings.Contains(lower, "italic") {
		legacySubfamily = "Italic"
	}
	return legacyFamily, legacySubfamily
}
