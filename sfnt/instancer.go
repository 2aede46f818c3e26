package sfnt

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/fontops/variation"
)

// OverlapMode controls how overlapping contours are handled when a font is
// instanced. The values match fontTools' instancer.OverlapMode.
type OverlapMode int

const (
	// OverlapKeepAndDontSetFlags keeps overlaps and leaves glyf flags alone.
	OverlapKeepAndDontSetFlags OverlapMode = iota
	// OverlapKeepAndSetFlags keeps overlaps and sets OVERLAP_SIMPLE and
	// OVERLAP_COMPOUND on glyphs.
	OverlapKeepAndSetFlags
	// OverlapRemove merges overlapping contours.
	OverlapRemove
	// OverlapRemoveAndIgnoreErrors merges overlaps, skipping glyphs that fail.
	OverlapRemoveAndIgnoreErrors
)

func (m OverlapMode) String() string {
	switch m {
	case OverlapKeepAndDontSetFlags:
		return "keep-and-dont-set-flags"
	case OverlapKeepAndSetFlags:
		return "keep-and-set-flags"
	case OverlapRemove:
		return "remove"
	case OverlapRemoveAndIgnoreErrors:
		return "remove-and-ignore-errors"
	default:
		return fmt.Sprintf("OverlapMode(%d)", int(m))
	}
}

// Removes reports whether the mode asks for overlap removal.
func (m OverlapMode) Removes() bool {
	return m == OverlapRemove || m == OverlapRemoveAndIgnoreErrors
}

// Request describes one instancing operation.
type Request struct {
	// Limits holds the new bounds of each axis to change. Pinned triples
	// drop the axis; axes not listed are kept as they are.
	Limits map[string]variation.Triple

	Overlap  OverlapMode
	Optimize bool

	// UpdateFontNames asks the instancer to rewrite the name table from
	// STAT. The native instancer ignores it.
	UpdateFontNames bool

	// Static requires a fully static result: every axis must be pinned.
	Static bool

	// Instancer selects a registered instancer by name; empty means "auto".
	Instancer string
}

// Pinned reports whether every limit of the request is pinned.
func (r Request) Pinned() bool {
	for _, t := range r.Limits {
		if !t.IsPinned() {
			return false
		}
	}
	return true
}

// Location returns the pinned value of every pinned limit.
func (r Request) Location() variation.Location {
	loc := make(variation.Location, len(r.Limits))
	for tag, t := range r.Limits {
		if t.IsPinned() {
			loc[tag] = t.Min
		}
	}
	return loc
}

// Instancer turns a variable font into a partial or full instance.
type Instancer interface {
	// Instantiate returns a new font; f is not modified.
	Instantiate(ctx context.Context, f *Font, req Request) (*Font, error)
}

// InstancerFunc adapts a function to the Instancer interface.
type InstancerFunc func(ctx context.Context, f *Font, req Request) (*Font, error)

// Instantiate implements Instancer.
func (fn InstancerFunc) Instantiate(ctx context.Context, f *Font, req Request) (*Font, error) {
	return fn(ctx, f, req)
}

// Registered instancer names.
const (
	InstancerNative    = "native"
	InstancerFontTools = "fonttools"
	InstancerAuto      = "auto"
)

var (
	instancersMu sync.RWMutex
	instancers   = map[string]Instancer{
		InstancerNative:    NativeInstancer{},
		InstancerFontTools: &FontToolsInstancer{},
		InstancerAuto:      autoInstancer{},
	}
)

// RegisterInstancer registers an instancer under name, replacing any
// previous one.
func RegisterInstancer(name string, in Instancer) {
	instancersMu.Lock()
	defer instancersMu.Unlock()
	instancers[name] = in
}

// LookupInstancer returns the instancer registered under name. The empty
// name selects "auto".
func LookupInstancer(name string) (Instancer, error) {
	if name == "" {
		name = InstancerAuto
	}
	instancersMu.RLock()
	defer instancersMu.RUnlock()
	in, ok := instancers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstancer, name)
	}
	return in, nil
}

// Instancers returns the registered instancer names, sorted.
func Instancers() []string {
	instancersMu.RLock()
	defer instancersMu.RUnlock()
	return slices.Sorted(maps.Keys(instancers))
}

// Instantiate runs the selected instancer and replaces the font tables with
// the result. On error the font is left unchanged.
func (f *Font) Instantiate(ctx context.Context, req Request) error {
	if !f.IsVariable() {
		return ErrNotVariable
	}
	in, err := LookupInstancer(req.Instancer)
	if err != nil {
		return err
	}
	Logger().Debug("sfnt: instantiate", "instancer", req.Instancer, "limits", len(req.Limits), "static", req.Static)

	out, err := in.Instantiate(ctx, f, req)
	if err != nil {
		return err
	}
	f.flavor = out.flavor
	f.tables = out.tables
	return nil
}

// autoInstancer uses fontTools when it is installed and the native
// instancer otherwise.
type autoInstancer struct{}

func (autoInstancer) Instantiate(ctx context.Context, f *Font, req Request) (*Font, error) {
	if ft, err := LookupInstancer(InstancerFontTools); err == nil {
		if a, ok := ft.(interface{ Available() bool }); !ok || a.Available() {
			Logger().Debug("sfnt: auto instancer selected fonttools")
			return ft.Instantiate(ctx, f, req)
		}
	}
	native, err := LookupInstancer(InstancerNative)
	if err != nil {
		return nil, err
	}
	Logger().Debug("sfnt: auto instancer selected native")
	return native.Instantiate(ctx, f, req)
}
