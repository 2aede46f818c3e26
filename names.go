package fontops

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/fontops/naming"
	"github.com/gogpu/fontops/sfnt"
)

// Name returns the value of a name record, preferring the Windows English
// record. The second result is false when the record does not exist.
func (f *Font) Name(id naming.NameID) (string, bool) {
	return f.sf.Name(id)
}

// NameByKey is Name with a snake_case key such as "family_name".
func (f *Font) NameByKey(key string) (string, bool) {
	id, ok := naming.LookupKey(key)
	if !ok {
		return "", false
	}
	return f.sf.Name(id)
}

// Names returns every readable name record keyed by ID.
func (f *Font) Names() (map[naming.NameID]string, error) {
	names, err := f.sf.Names()
	if err != nil {
		return nil, nameDataError("names", err)
	}
	return names, nil
}

// SetName writes a name record on the Windows and Macintosh platforms.
func (f *Font) SetName(id naming.NameID, value string) error {
	return f.SetNames(map[naming.NameID]string{id: value})
}

// SetNames writes several name records at once.
func (f *Font) SetNames(names map[naming.NameID]string) error {
	if err := f.sf.SetNames(names); err != nil {
		return nameDataError("set names", err)
	}
	return nil
}

// DeleteNames removes name records on every platform.
func (f *Font) DeleteNames(ids ...naming.NameID) error {
	if err := f.sf.DeleteNames(ids...); err != nil {
		return nameDataError("delete names", err)
	}
	return nil
}

// FamilyName returns the typographic family name, falling back to the WWS
// and then the legacy family name.
func (f *Font) FamilyName() string {
	return f.firstName(naming.TypographicFamily, naming.WWSFamily, naming.Family)
}

// StyleName returns the typographic subfamily name, falling back to the
// WWS and then the legacy subfamily name.
func (f *Font) StyleName() string {
	return f.firstName(naming.TypographicSubfamily, naming.WWSSubfamily, naming.Subfamily)
}

func (f *Font) firstName(ids ...naming.NameID) string {
	for _, id := range ids {
		if v, ok := f.sf.Name(id); ok && v != "" {
			return v
		}
	}
	return ""
}

// Rename rewrites the family, style, full, PostScript and unique ID
// records (1, 2, 3, 4, 6, 16, 17, 21, 22) for a new family and style name.
// An empty family or style keeps the current one.
//
// Rename fails with *ArgumentError, leaving the font untouched, when the
// derived PostScript name is longer than 63 characters. With
// updateStyleFlags the regular, bold and italic bits follow the new legacy
// subfamily name.
func (f *Font) Rename(family, style string, updateStyleFlags bool) error {
	plan, err := f.renamePlan(family, style)
	if err != nil {
		return err
	}
	return f.applyRenamePlan(plan, updateStyleFlags)
}

// renamePlan computes the records without touching the font.
func (f *Font) renamePlan(family, style string) (naming.Plan, error) {
	if family = strings.TrimSpace(family); family == "" {
		family = f.FamilyName()
	}
	if style = strings.TrimSpace(style); style == "" {
		style = f.StyleName()
	}
	oldPS, _ := f.sf.Name(naming.PostScript)
	oldUID, _ := f.sf.Name(naming.UniqueID)

	plan, err := naming.NewPlan(family, style, oldPS, oldUID)
	if err != nil {
		return naming.Plan{}, &ArgumentError{Op: "rename", Msg: "invalid PostScript name", Err: err}
	}
	return plan, nil
}

func (f *Font) applyRenamePlan(plan naming.Plan, updateStyleFlags bool) error {
	if err := f.SetNames(plan.Records()); err != nil {
		return err
	}
	if updateStyleFlags {
		f.SetStyleFlagsBySubfamilyName()
	}
	return nil
}

// SetFamilyName renames the font keeping its style name.
func (f *Font) SetFamilyName(name string) error {
	return f.Rename(name, "", true)
}

// SetStyleName renames the font keeping its family name.
func (f *Font) SetStyleName(name string) error {
	return f.Rename("", name, true)
}

// StyleFlag reports whether a style bit is set in OS/2 fsSelection or
// head macStyle.
func (f *Font) StyleFlag(flag naming.StyleFlag) bool {
	return f.sf.StyleFlag(flag)
}

// StyleFlags returns every style flag.
func (f *Font) StyleFlags() map[naming.StyleFlag]bool {
	return f.sf.StyleFlags()
}

// SetStyleFlag sets or clears one style bit in both tables.
func (f *Font) SetStyleFlag(flag naming.StyleFlag, value bool) {
	f.sf.SetStyleFlag(flag, value)
}

// SetStyleFlags applies the non-nil fields of u.
func (f *Font) SetStyleFlags(u naming.FlagUpdate) {
	f.sf.SetStyleFlags(u)
}

// SetStyleFlagsBySubfamilyName sets the regular, bold and italic bits from
// the legacy subfamily name. Names other than Regular, Bold, Italic and
// Bold Italic leave the flags unchanged.
func (f *Font) SetStyleFlagsBySubfamilyName() {
	sub, _ := f.sf.Name(naming.Subfamily)
	if u, ok := naming.FlagsForSubfamily(sub); ok {
		f.sf.SetStyleFlags(u)
	}
}

func nameDataError(op string, err error) error {
	var te *sfnt.TableError
	if errors.As(err, &te) {
		return &DataError{Op: op, Msg: "unreadable name table", Err: err}
	}
	return &DataError{Op: op, Err: err}
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.ToLower(s))
}
