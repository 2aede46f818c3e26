package variation

import (
	"math"
	"strings"
	"testing"
)

func weightInstances() []NamedInstance {
	return []NamedInstance{
		{Coordinates: Location{"wght": 400}, StyleName: "Regular"},
		{Coordinates: Location{"wght": 700}, StyleName: "Bold"},
	}
}

func TestDistance(t *testing.T) {
	axes := testAxes()

	tests := []struct {
		name string
		a, b Location
		want float64
	}{
		{"same point", Location{"wght": 400, "wdth": 100}, Location{"wght": 400, "wdth": 100}, 0},
		{"one axis", Location{"wght": 400}, Location{"wght": 700}, 300},
		{"two axes", Location{"wght": 400, "wdth": 100}, Location{"wght": 700, "wdth": 125}, math.Hypot(300, 25)},
		{"missing tag uses default", Location{"wght": 400, "wdth": 75}, Location{"wght": 400}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b, axes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := Distance(tt.b, tt.a, axes); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	axes := Axes{{Tag: "wght", Min: 100, Default: 400, Max: 900}}

	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"exact regular", Location{"wght": 400}, "Regular"},
		{"nearer bold", Location{"wght": 600}, "Bold"},
		{"nearer regular", Location{"wght": 500}, "Regular"},
		{"tie keeps first", Location{"wght": 550}, "Regular"},
		{"beyond bold", Location{"wght": 900}, "Bold"},
		{"empty uses default", Location{}, "Regular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.loc, weightInstances(), axes)
			if !ok {
				t.Fatal("Closest() found nothing")
			}
			if got.StyleName != tt.want {
				t.Errorf("Closest() = %q, want %q", got.StyleName, tt.want)
			}
		})
	}
}

func TestClosest_NoInstances(t *testing.T) {
	if _, ok := Closest(Location{"wght": 400}, nil, testAxes()); ok {
		t.Error("Closest() with no instances should report false")
	}
}

func TestClosest_OrderIndependent(t *testing.T) {
	axes := testAxes()
	instances := []NamedInstance{
		{Coordinates: Location{"wght": 400, "wdth": 100}, StyleName: "Regular"},
		{Coordinates: Location{"wght": 500, "wdth": 100}, StyleName: "Medium"},
		{Coordinates: Location{"wght": 500, "wdth": 75}, StyleName: "Condensed Medium"},
	}

	a := Location{}
	a["wght"] = 500
	a["wdth"] = 100
	b := Location{}
	b["wdth"] = 100
	b["wght"] = 500

	for range 20 {
		ga, _ := Closest(a, instances, axes)
		gb, _ := Closest(b, instances, axes)
		if ga.StyleName != gb.StyleName || ga.StyleName != "Medium" {
			t.Fatalf("Closest() = %q / %q, want Medium for both", ga.StyleName, gb.StyleName)
		}
	}
}

func TestClosest_TieIsStable(t *testing.T) {
	axes := testAxes()
	instances := []NamedInstance{
		{Coordinates: Location{"wght": 300, "wdth": 100}, StyleName: "Light"},
		{Coordinates: Location{"wght": 500, "wdth": 100}, StyleName: "Medium"},
		{Coordinates: Location{"wght": 250, "wdth": 75}, StyleName: "Condensed Light"},
	}

	for range 20 {
		got, _ := Closest(Location{"wght": 400, "wdth": 100}, instances, axes)
		if got.StyleName != "Light" {
			t.Fatalf("Closest() = %q, want Light", got.StyleName)
		}
	}
}

func TestFindByStyleName(t *testing.T) {
	key := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), "")) }

	got, ok := FindByStyleName(weightInstances(), "  BOLD ", key)
	if !ok || got.StyleName != "Bold" {
		t.Errorf("FindByStyleName() = %q, %v, want Bold, true", got.StyleName, ok)
	}
	if _, ok := FindByStyleName(weightInstances(), "Black", key); ok {
		t.Error("FindByStyleName(Black) should not match")
	}
}
