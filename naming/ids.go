package naming

import "fmt"

// NameID identifies a name record in the OpenType name table.
type NameID uint16

// Name IDs defined by the OpenType specification.
const (
	Copyright NameID = iota
	Family
	Subfamily
	UniqueID
	FullName
	Version
	PostScript
	Trademark
	Manufacturer
	Designer
	Description
	VendorURL
	DesignerURL
	LicenseDescription
	LicenseInfoURL
	Reserved
	TypographicFamily
	TypographicSubfamily
	CompatibleFull
	SampleText
	PostScriptCIDFindfont
	WWSFamily
	WWSSubfamily
	LightBackgroundPalette
	DarkBackgroundPalette
	VariationsPostScriptPrefix
)

var nameKeys = [...]string{
	Copyright:                  "copyright_notice",
	Family:                     "family_name",
	Subfamily:                  "subfamily_name",
	UniqueID:                   "unique_identifier",
	FullName:                   "full_name",
	Version:                    "version",
	PostScript:                 "postscript_name",
	Trademark:                  "trademark",
	Manufacturer:               "manufacturer_name",
	Designer:                   "designer",
	Description:                "description",
	VendorURL:                  "vendor_url",
	DesignerURL:                "designer_url",
	LicenseDescription:         "license_description",
	LicenseInfoURL:             "license_info_url",
	Reserved:                   "reserved",
	TypographicFamily:          "typographic_family_name",
	TypographicSubfamily:       "typographic_subfamily_name",
	CompatibleFull:             "compatible_full",
	SampleText:                 "sample_text",
	PostScriptCIDFindfont:      "postscript_cid_findfont_name",
	WWSFamily:                  "wws_family_name",
	WWSSubfamily:               "wws_subfamily_name",
	LightBackgroundPalette:     "light_background_palette",
	DarkBackgroundPalette:      "dark_background_palette",
	VariationsPostScriptPrefix: "variations_postscript_name_prefix",
}

var nameIDsByKey = func() map[string]NameID {
	m := make(map[string]NameID, len(nameKeys))
	for id, key := range nameKeys {
		m[key] = NameID(id)
	}
	return m
}()

// Key returns the snake_case key of a predefined name ID,
// or "name_<id>" for font-specific IDs.
func (id NameID) Key() string {
	if int(id) < len(nameKeys) {
		return nameKeys[id]
	}
	return fmt.Sprintf("name_%d", id)
}

// String implements fmt.Stringer.
func (id NameID) String() string {
	return id.Key()
}

// Predefined reports whether id is one of the IDs defined by OpenType
// (0 to 25); IDs 256 and above are font-specific.
func (id NameID) Predefined() bool {
	return int(id) < len(nameKeys)
}

// LookupKey returns the name ID for a snake_case key such as "family_name".
func LookupKey(key string) (NameID, bool) {
	id, ok := nameIDsByKey[key]
	return id, ok
}

// Keys returns the keys of all predefined name IDs, in ID order.
func Keys() []string {
	keys := make([]string, len(nameKeys))
	copy(keys, nameKeys[:])
	return keys
}
