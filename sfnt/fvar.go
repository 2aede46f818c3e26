package sfnt

import (
	"encoding/binary"

	"github.com/go-text/typesetting/font/opentype/tables"

	"github.com/gogpu/fontops/naming"
	"github.com/gogpu/fontops/variation"
)

const axisFlagHidden = 0x0001

// fvarRecord is the raw axis record data go-text keeps private.
type fvarRecord struct {
	flags uint16
	strid naming.NameID
}

// Axes returns the variation axes declared in fvar, in declaration order.
// It returns nil for a static font and a *TableError when an axis default
// lies outside its bounds.
func (f *Font) Axes() (variation.Axes, error) {
	data, ok := f.tables[tagFvar]
	if !ok {
		return nil, nil
	}
	fvar, _, err := tables.ParseFvar(data)
	if err != nil {
		return nil, &TableError{Tag: "fvar", Err: err}
	}
	records := rawAxisRecords(data, len(fvar.Axis))

	var names []NameRecord
	if raw, ok := f.tables[tagName]; ok {
		names, _ = parseNameTable(raw)
	}

	axes := make(variation.Axes, len(fvar.Axis))
	for i, rec := range fvar.Axis {
		tag := rec.Tag.String()
		a := variation.Axis{
			Tag:     tag,
			Min:     float64(rec.Minimum),
			Default: float64(rec.Default),
			Max:     float64(rec.Maximum),
		}
		if i < len(records) {
			a.Hidden = records[i].flags&axisFlagHidden != 0
			if name, ok := lookupName(names, records[i].strid); ok && name != "" {
				a.Name = name
			}
		}
		if a.Name == "" {
			a.Name = variation.AxisName(tag)
		}
		if err := a.Validate(); err != nil {
			return nil, &TableError{Tag: "fvar", Err: err}
		}
		axes[i] = a
	}
	return axes, nil
}

// NamedInstances returns the named instances declared in fvar. Style and
// PostScript names are resolved through the name table.
//
// Instance records are read directly: they are sized by the instanceSize
// header field, which decides whether a PostScript name ID is present.
func (f *Font) NamedInstances() ([]variation.NamedInstance, error) {
	data, ok := f.tables[tagFvar]
	if !ok {
		return nil, nil
	}
	axes, err := f.Axes()
	if err != nil {
		return nil, err
	}

	offset := int(binary.BigEndian.Uint16(data[4:]))
	axisSize := int(binary.BigEndian.Uint16(data[10:]))
	count := int(binary.BigEndian.Uint16(data[12:]))
	size := int(binary.BigEndian.Uint16(data[14:]))
	if size < 4+4*len(axes) {
		return nil, tableError("fvar", "instance size %d too small for %d axes", size, len(axes))
	}
	start := offset + axisSize*len(axes)
	if start+count*size > len(data) {
		return nil, tableError("fvar", "truncated instance records")
	}

	var names []NameRecord
	if raw, ok := f.tables[tagName]; ok {
		names, _ = parseNameTable(raw)
	}

	instances := make([]variation.NamedInstance, 0, count)
	for i := range count {
		rec := data[start+i*size : start+(i+1)*size]
		inst := variation.NamedInstance{
			Coordinates: make(variation.Location, len(axes)),
		}
		for j, a := range axes {
			inst.Coordinates[a.Tag] = fixedToFloat(binary.BigEndian.Uint32(rec[4+4*j:]))
		}
		inst.StyleName, _ = lookupName(names, naming.NameID(binary.BigEndian.Uint16(rec)))
		if size >= 6+4*len(axes) {
			if id := binary.BigEndian.Uint16(rec[4+4*len(axes):]); id != 0 && id != 0xFFFF {
				inst.PostScriptName, _ = lookupName(names, naming.NameID(id))
			}
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// rawAxisRecords reads the flags and name ID of each axis record.
func rawAxisRecords(data []byte, count int) []fvarRecord {
	if len(data) < 16 {
		return nil
	}
	offset := int(binary.BigEndian.Uint16(data[4:]))
	size := int(binary.BigEndian.Uint16(data[10:]))
	if size < 20 {
		return nil
	}
	out := make([]fvarRecord, 0, count)
	for i := range count {
		rec := offset + i*size
		if rec+20 > len(data) {
			break
		}
		out = append(out, fvarRecord{
			flags: binary.BigEndian.Uint16(data[rec+16:]),
			strid: naming.NameID(binary.BigEndian.Uint16(data[rec+18:])),
		})
	}
	return out
}
