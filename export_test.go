package fontops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fontops/internal/fonttest"
	"github.com/gogpu/fontops/sfnt"
)

func TestFont_SaveVariableInstances(t *testing.T) {
	dir := t.TempDir()
	f := openTest(t, fonttest.Variable())
	before, err := f.Hash()
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.SaveVariableInstances(context.Background(), dir, WithWorkers(2))
	if err != nil {
		t.Fatalf("SaveVariableInstances() error = %v", err)
	}
	if after, _ := f.Hash(); after != before {
		t.Error("source font modified by SaveVariableInstances")
	}

	var styles []string
	for _, inst := range got {
		styles = append(styles, inst.Instance.StyleName)
	}
	wantStyles := []string{"Thin", "Regular", "Bold", "Black", "Condensed Regular", "Condensed Bold"}
	if diff := cmp.Diff(wantStyles, styles); diff != "" {
		t.Fatalf("exported styles mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	if len(files) != 18 {
		t.Errorf("dir holds %d files, want 18: %v", len(files), files)
	}

	bold := got[2]
	wantFiles := map[sfnt.Format]string{
		sfnt.FormatTTF:   filepath.Join(dir, "TestSansVF-Bold.ttf"),
		sfnt.FormatWOFF:  filepath.Join(dir, "TestSansVF-Bold.woff"),
		sfnt.FormatWOFF2: filepath.Join(dir, "TestSansVF-Bold.woff2"),
	}
	if diff := cmp.Diff(wantFiles, bold.Files); diff != "" {
		t.Errorf("Bold files mismatch (-want +got):\n%s", diff)
	}

	saved, err := OpenFile(bold.Files[sfnt.FormatTTF])
	if err != nil {
		t.Fatal(err)
	}
	if !saved.IsStatic() {
		t.Error("exported font is variable")
	}
	if w, _ := saved.Weight(); w.Value != 700 {
		t.Errorf("exported Bold weight = %d", w.Value)
	}
	if ps, _ := saved.NameByKey("postscript_name"); ps != "TestSansVF-Bold" {
		t.Errorf("exported Bold PostScript name = %q", ps)
	}
	if h, _ := saved.Hash(); h != bold.Hash {
		t.Errorf("exported Bold hash = %x, want %x", h, bold.Hash)
	}

	hashes := make([]uint64, len(got))
	for i, inst := range got {
		hashes[i] = inst.Hash
	}
	slices.Sort(hashes)
	if len(slices.Compact(hashes)) != len(got) {
		t.Error("exported instances share a hash")
	}
}

func TestFont_SaveVariableInstances_Formats(t *testing.T) {
	dir := t.TempDir()
	f := openTest(t, fonttest.Variable())

	got, err := f.SaveVariableInstances(context.Background(), dir,
		WithFormats(sfnt.FormatTTF), WithInstanceOptions(WithOptimize(false)))
	if err != nil {
		t.Fatalf("SaveVariableInstances() error = %v", err)
	}
	for _, inst := range got {
		if len(inst.Files) != 1 {
			t.Errorf("%s: %d files, want 1", inst.Instance.StyleName, len(inst.Files))
		}
	}
}

func TestFont_SaveVariableInstances_NoOverwrite(t *testing.T) {
	dir := t.TempDir()
	f := openTest(t, fonttest.Variable())

	if _, err := f.SaveVariableInstances(context.Background(), dir, WithFormats()); err != nil {
		t.Fatal(err)
	}
	_, err := f.SaveVariableInstances(context.Background(), dir, WithFormats(), WithOverwrite(false))
	var aerr *ArgumentError
	if !errors.As(err, &aerr) {
		t.Errorf("SaveVariableInstances() error = %v, want *ArgumentError", err)
	}
}

func TestFont_SaveVariableInstances_Errors(t *testing.T) {
	t.Run("static font", func(t *testing.T) {
		f := openTest(t, fonttest.Static())
		_, err := f.SaveVariableInstances(context.Background(), t.TempDir())
		var oerr *OperationError
		if !errors.As(err, &oerr) {
			t.Errorf("error = %v, want *OperationError", err)
		}
	})

	t.Run("target is a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		f := openTest(t, fonttest.Variable())
		_, err := f.SaveVariableInstances(context.Background(), path)
		var aerr *ArgumentError
		if !errors.As(err, &aerr) {
			t.Errorf("error = %v, want *ArgumentError", err)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := openTest(t, fonttest.Variable())
		_, err := f.SaveVariableInstances(ctx, t.TempDir())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestExportFormats(t *testing.T) {
	tests := []struct {
		source sfnt.Format
		extra  []sfnt.Format
		want   []sfnt.Format
	}{
		{sfnt.FormatTTF, nil, []sfnt.Format{sfnt.FormatTTF}},
		{sfnt.FormatTTF, []sfnt.Format{sfnt.FormatWOFF, sfnt.FormatWOFF2}, []sfnt.Format{sfnt.FormatTTF, sfnt.FormatWOFF, sfnt.FormatWOFF2}},
		{sfnt.FormatWOFF2, []sfnt.Format{sfnt.FormatWOFF, sfnt.FormatWOFF2}, []sfnt.Format{sfnt.FormatWOFF2, sfnt.FormatWOFF}},
	}
	for _, tt := range tests {
		t.Run(tt.source.String(), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, exportFormats(tt.source, tt.extra)); diff != "" {
				t.Errorf("exportFormats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
