package variation

import (
	"math"
	"strings"
)

// Distance returns the Euclidean distance between two locations in
// user-space units. Tags are taken from both locations; a tag missing on
// one side contributes the axis default (or 0 for a tag that is not an axis).
func Distance(a, b Location, axes Axes) float64 {
	var sum float64
	add := func(tag string) {
		d := valueAt(a, tag, axes) - valueAt(b, tag, axes)
		sum += d * d
	}
	for tag := range a {
		add(tag)
	}
	for tag := range b {
		if _, seen := a[tag]; !seen {
			add(tag)
		}
	}
	return math.Sqrt(sum)
}

// Closest returns the named instance nearest to loc.
//
// Instances are scanned in declaration order and replaced only by a strictly
// closer one, so the first of several equidistant instances wins.
// The second result is false when instances is empty.
func Closest(loc Location, instances []NamedInstance, axes Axes) (NamedInstance, bool) {
	if len(instances) == 0 {
		return NamedInstance{}, false
	}

	query := Resolve(loc, axes)
	best := -1
	bestDistance := math.Inf(1)
	for i, inst := range instances {
		if d := Distance(query, inst.Coordinates, axes); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return NamedInstance{}, false
	}
	return instances[best], true
}

// FindByStyleName returns the first instance whose style name matches name
// under the given key function (typically a slug).
func FindByStyleName(instances []NamedInstance, name string, key func(string) string) (NamedInstance, bool) {
	if key == nil {
		key = strings.TrimSpace
	}
	want := key(name)
	for _, inst := range instances {
		if key(inst.StyleName) == want {
			return inst, true
		}
	}
	return NamedInstance{}, false
}

func valueAt(loc Location, tag string, axes Axes) float64 {
	if v, ok := loc[tag]; ok {
		return v
	}
	if a, ok := axes.ByTag(tag); ok {
		return a.Default
	}
	return 0
}
