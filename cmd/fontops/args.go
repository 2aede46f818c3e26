package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gogpu/fontops/sfnt"
	"github.com/gogpu/fontops/variation"
)

var errNoFonts = errors.New("no font files given")

// expandArgs expands doublestar patterns. Arguments without pattern
// characters are kept as given so a missing file is reported by the open.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files", arg)
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, errNoFonts
	}
	return paths, nil
}

// parseCoords parses "wght=700,wdth=75:100" into coordinates.
//
// A single number pins the axis, "min:max" is a range with the default
// clamped into it, "min:default:max" a full range and "default" pins the
// axis at its default value.
func parseCoords(s string) (variation.Coordinates, error) {
	coords := variation.Coordinates{}
	if strings.TrimSpace(s) == "" {
		return coords, nil
	}
	for item := range strings.SplitSeq(s, ",") {
		tag, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok || tag == "" {
			return nil, fmt.Errorf("coordinate %q: want tag=value", item)
		}
		if _, dup := coords[tag]; dup {
			return nil, fmt.Errorf("coordinate %q: axis given twice", tag)
		}
		if value == "default" {
			coords[tag] = nil
			continue
		}

		parts := strings.Split(value, ":")
		nums := make([]float64, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("coordinate %q: %w", item, err)
			}
			nums[i] = v
		}
		switch len(nums) {
		case 1:
			coords[tag] = variation.Value(nums[0])
		case 2:
			coords[tag] = variation.Range(nums[0], nums[1])
		case 3:
			coords[tag] = variation.FullRange(nums[0], nums[1], nums[2])
		default:
			return nil, fmt.Errorf("coordinate %q: too many values", item)
		}
	}
	return coords, nil
}

// parseFormats parses a comma separated list such as "woff,woff2".
func parseFormats(s string) ([]sfnt.Format, error) {
	var formats []sfnt.Format
	for name := range strings.SplitSeq(s, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		f, err := sfnt.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}
