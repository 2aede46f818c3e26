package naming

import "strings"

// StyleFlag is one style bit mirrored across OS/2 fsSelection and
// head macStyle.
type StyleFlag int

// Style flags.
const (
	FlagRegular StyleFlag = iota
	FlagBold
	FlagItalic
	FlagUnderline
	FlagOutline
	FlagShadow
	FlagCondensed
	FlagExtended
)

// noBit marks a flag with no bit in one of the two tables.
const noBit = -1

type flagBits struct {
	name string
	os2  int // OS/2 fsSelection
	head int // head macStyle
}

var flagTable = [...]flagBits{
	FlagRegular:   {"regular", 6, noBit},
	FlagBold:      {"bold", 5, 0},
	FlagItalic:    {"italic", 0, 1},
	FlagUnderline: {"underline", noBit, 2},
	FlagOutline:   {"outline", 3, 3},
	FlagShadow:    {"shadow", noBit, 4},
	FlagCondensed: {"condensed", noBit, 5},
	FlagExtended:  {"extended", noBit, 6},
}

// Flags returns every style flag in declaration order.
func Flags() []StyleFlag {
	return []StyleFlag{
		FlagRegular, FlagBold, FlagItalic, FlagUnderline,
		FlagOutline, FlagShadow, FlagCondensed, FlagExtended,
	}
}

// String returns the lower-case flag name.
func (f StyleFlag) String() string {
	if !f.valid() {
		return "unknown"
	}
	return flagTable[f].name
}

// OS2Bit returns the fsSelection bit of the flag, or false if it has none.
func (f StyleFlag) OS2Bit() (uint, bool) {
	if !f.valid() {
		return 0, false
	}
	return bit(flagTable[f].os2)
}

// HeadBit returns the macStyle bit of the flag, or false if it has none.
func (f StyleFlag) HeadBit() (uint, bool) {
	if !f.valid() {
		return 0, false
	}
	return bit(flagTable[f].head)
}

func (f StyleFlag) valid() bool {
	return f >= 0 && int(f) < len(flagTable)
}

func bit(b int) (uint, bool) {
	if b == noBit {
		return 0, false
	}
	return uint(b), true
}

// ParseFlag returns the flag with the given name, case-insensitively.
func ParseFlag(name string) (StyleFlag, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, fb := range flagTable {
		if fb.name == name {
			return StyleFlag(i), true
		}
	}
	return 0, false
}

// FlagUpdate holds optional new values for style flags.
// Nil fields leave the corresponding flag unchanged.
type FlagUpdate struct {
	Regular   *bool
	Bold      *bool
	Italic    *bool
	Underline *bool
	Outline   *bool
	Shadow    *bool
	Condensed *bool
	Extended  *bool
}

// Set returns the update as a map holding only the non-nil fields.
func (u FlagUpdate) Set() map[StyleFlag]bool {
	m := make(map[StyleFlag]bool)
	for _, e := range []struct {
		flag StyleFlag
		v    *bool
	}{
		{FlagRegular, u.Regular},
		{FlagBold, u.Bold},
		{FlagItalic, u.Italic},
		{FlagUnderline, u.Underline},
		{FlagOutline, u.Outline},
		{FlagShadow, u.Shadow},
		{FlagCondensed, u.Condensed},
		{FlagExtended, u.Extended},
	} {
		if e.v != nil {
			m[e.flag] = *e.v
		}
	}
	return m
}

// Merge returns u with every non-nil field of o applied on top.
func (u FlagUpdate) Merge(o FlagUpdate) FlagUpdate {
	pick := func(a, b *bool) *bool {
		if b != nil {
			return b
		}
		return a
	}
	return FlagUpdate{
		Regular:   pick(u.Regular, o.Regular),
		Bold:      pick(u.Bold, o.Bold),
		Italic:    pick(u.Italic, o.Italic),
		Underline: pick(u.Underline, o.Underline),
		Outline:   pick(u.Outline, o.Outline),
		Shadow:    pick(u.Shadow, o.Shadow),
		Condensed: pick(u.Condensed, o.Condensed),
		Extended:  pick(u.Extended, o.Extended),
	}
}

// Bool returns a pointer to v, for use in FlagUpdate literals.
func Bool(v bool) *bool { return &v }

// FlagsForSubfamily returns the regular/bold/italic flags implied by a
// legacy subfamily name. It returns false for names outside
// Regular, Bold, Italic and Bold Italic.
func FlagsForSubfamily(subfamily string) (FlagUpdate, bool) {
	switch strings.ToLower(strings.TrimSpace(subfamily)) {
	case "regular":
		return FlagUpdate{Regular: Bool(true), Bold: Bool(false), Italic: Bool(false)}, true
	case "bold":
		return FlagUpdate{Regular: Bool(false), Bold: Bool(true), Italic: Bool(false)}, true
	case "italic":
		return FlagUpdate{Regular: Bool(false), Bold: Bool(false), Italic: Bool(true)}, true
	case "bold italic":
		return FlagUpdate{Regular: Bool(false), Bold: Bool(true), Italic: Bool(true)}, true
	}
	return FlagUpdate{}, false
}
