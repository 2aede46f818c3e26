package variation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testAxes() Axes {
	return Axes{
		{Tag: "wght", Name: "Weight", Min: 100, Default: 400, Max: 900},
		{Tag: "wdth", Name: "Width", Min: 75, Default: 100, Max: 125},
	}
}

func TestSpec_Triple(t *testing.T) {
	axis := Axis{Tag: "wght", Min: 100, Default: 400, Max: 900}

	tests := []struct {
		name string
		spec Spec
		want Triple
	}{
		{"pin", Value(700), Triple{700, 700, 700}},
		{"range keeps axis default", Range(200, 600), Triple{200, 400, 600}},
		{"range clamps default", Range(500, 800), Triple{500, 500, 800}},
		{"degenerate range pins", Range(300, 300), Triple{300, 300, 300}},
		{"full range verbatim", FullRange(200, 250, 600), Triple{200, 250, 600}},
		{"partial min only", Partial{Min: Bound(300)}, Triple{300, 400, 900}},
		{"partial max only", Partial{Max: Bound(300)}, Triple{100, 300, 300}},
		{"partial default only", Partial{Default: Bound(500)}, Triple{100, 500, 900}},
		{"partial all", Partial{Min: Bound(200), Default: Bound(300), Max: Bound(400)}, Triple{200, 300, 400}},
		{"partial empty", Partial{}, Triple{100, 400, 900}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Triple(axis); got != tt.want {
				t.Errorf("Triple() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizePin_DefaultsUnspecifiedAxes(t *testing.T) {
	axes := testAxes()

	loc, err := NormalizePin(Coordinates{"wght": Value(700)}, axes)
	if err != nil {
		t.Fatalf("NormalizePin() error = %v", err)
	}

	want := Location{"wght": 700, "wdth": 100}
	if diff := cmp.Diff(want, loc); diff != "" {
		t.Errorf("NormalizePin() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePin_Empty(t *testing.T) {
	axes := testAxes()

	loc, err := NormalizePin(nil, axes)
	if err != nil {
		t.Fatalf("NormalizePin(nil) error = %v", err)
	}
	if diff := cmp.Diff(axes.Defaults(), loc); diff != "" {
		t.Errorf("NormalizePin(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePin_NilSpecUsesDefault(t *testing.T) {
	loc, err := NormalizePin(Coordinates{"wght": nil}, testAxes())
	if err != nil {
		t.Fatalf("NormalizePin() error = %v", err)
	}
	if loc["wght"] != 400 {
		t.Errorf("wght = %v, want 400", loc["wght"])
	}
}

func TestNormalizePin_Errors(t *testing.T) {
	axes := testAxes()

	tests := []struct {
		name    string
		coords  Coordinates
		wantErr error
		wantTag string
	}{
		{"range not pinned", Coordinates{"wght": Range(100, 700)}, ErrNotPinned, "wght"},
		{"partial not pinned", Coordinates{"wdth": Partial{Min: Bound(80)}}, ErrNotPinned, "wdth"},
		{"unknown axis", Coordinates{"opsz": Value(12)}, ErrUnknownAxis, "opsz"},
		{"below min", Coordinates{"wght": Value(50)}, ErrOutOfRange, "wght"},
		{"above max", Coordinates{"wdth": Value(150)}, ErrOutOfRange, "wdth"},
		{"inverted range", Coordinates{"wght": FullRange(700, 400, 300)}, ErrInvalidRange, "wght"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePin(tt.coords, axes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NormalizePin() error = %v, want %v", err, tt.wantErr)
			}
			var axisErr *AxisError
			if !errors.As(err, &axisErr) {
				t.Fatalf("error %T is not *AxisError", err)
			}
			if axisErr.Tag != tt.wantTag {
				t.Errorf("AxisError.Tag = %q, want %q", axisErr.Tag, tt.wantTag)
			}
		})
	}
}

func TestNormalizeSlice(t *testing.T) {
	axes := testAxes()

	limits, err := NormalizeSlice(Coordinates{
		"wght": Range(300, 700),
	}, axes)
	if err != nil {
		t.Fatalf("NormalizeSlice() error = %v", err)
	}

	want := map[string]Triple{"wght": {300, 400, 700}}
	if diff := cmp.Diff(want, limits); diff != "" {
		t.Errorf("NormalizeSlice() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSlice_PinsSomeAxes(t *testing.T) {
	axes := testAxes()

	limits, err := NormalizeSlice(Coordinates{
		"wght": Range(300, 700),
		"wdth": Value(100),
	}, axes)
	if err != nil {
		t.Fatalf("NormalizeSlice() error = %v", err)
	}
	if !limits["wdth"].IsPinned() {
		t.Errorf("wdth = %v, want pinned", limits["wdth"])
	}
	if limits["wght"].IsPinned() {
		t.Errorf("wght = %v, want a range", limits["wght"])
	}
}

func TestNormalizeSlice_Errors(t *testing.T) {
	axes := testAxes()

	tests := []struct {
		name    string
		coords  Coordinates
		wantErr error
	}{
		{"empty", Coordinates{}, ErrNoAxes},
		{"nil", nil, ErrNoAxes},
		{"all pinned", Coordinates{"wght": Value(700), "wdth": Value(100)}, ErrAllPinned},
		{"all pinned by degenerate ranges", Coordinates{"wght": Range(500, 500), "wdth": Partial{Min: Bound(90), Max: Bound(90)}}, ErrAllPinned},
		{"unknown axis", Coordinates{"GRAD": Range(0, 1)}, ErrUnknownAxis},
		{"out of range", Coordinates{"wght": Range(50, 700)}, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeSlice(tt.coords, axes)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NormalizeSlice() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeSlice_AllPinnedButPinSucceeds(t *testing.T) {
	axes := testAxes()
	coords := Coordinates{"wght": Value(700), "wdth": Value(100)}

	if _, err := NormalizeSlice(coords, axes); !errors.Is(err, ErrAllPinned) {
		t.Errorf("NormalizeSlice() error = %v, want ErrAllPinned", err)
	}
	if _, err := NormalizePin(coords, axes); err != nil {
		t.Errorf("NormalizePin() error = %v, want nil", err)
	}
}

func TestResolve(t *testing.T) {
	got := Resolve(Location{"wght": 650}, testAxes())
	want := Location{"wght": 650, "wdth": 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestAxis_Validate(t *testing.T) {
	if err := (Axis{Tag: "wght", Min: 100, Default: 400, Max: 900}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	err := (Axis{Tag: "wght", Min: 500, Default: 400, Max: 900}).Validate()
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Validate() = %v, want ErrInvalidRange", err)
	}
}

func TestAxes_Tags(t *testing.T) {
	if diff := cmp.Diff([]string{"wght", "wdth"}, testAxes().Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	if tags := Axes(nil).Tags(); tags != nil {
		t.Errorf("Tags() of no axes = %#v, want nil", tags)
	}
}

func TestAxisName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"wght", "Weight"},
		{"opsz", "Optical Size"},
		{"GRAD", "Grade"},
		{"abcd", "Abcd"},
	}
	for _, tt := range tests {
		if got := AxisName(tt.tag); got != tt.want {
			t.Errorf("AxisName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
