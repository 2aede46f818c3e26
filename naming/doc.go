// Package naming derives the name records and style bits that must stay in
// step when a font is renamed or pinned to a static instance.
//
// It knows nothing about font binaries: callers read the current records,
// build a [Plan] and write the plan's [Plan.Records] back through their
// name-table accessor.
//
//	plan, err := naming.NewPlan("My Font", "Bold Italic", oldPS, oldUniqueID)
//	if err != nil {
//	    return err // *naming.LengthError when the PostScript name is too long
//	}
//	font.SetNames(plan.Records())
//
// Legacy name records 1 and 2 follow the R/I/B/BI model: a style outside
// Regular, Italic, Bold and Bold Italic moves into the legacy family name and
// the legacy subfamily becomes Regular or Italic.
package naming
