package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hako/durafmt"

	"github.com/gogpu/fontops"
	"github.com/gogpu/fontops/sanitize"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: fontops %s [flags] FONT...\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// openAll parses the flags and opens every font argument. instancer may
// point at a flag of fs; it is read after parsing.
func openAll(fs *flag.FlagSet, args []string, instancer *string) ([]*fontops.Font, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var opts []fontops.Option
	if instancer != nil {
		opts = append(opts, fontops.WithInstancer(*instancer))
	}
	paths, err := expandArgs(fs.Args())
	if err != nil {
		return nil, err
	}
	fonts := make([]*fontops.Font, 0, len(paths))
	for _, path := range paths {
		f, err := fontops.OpenFile(path, opts...)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

func runInfo(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("info")
	fonts, err := openAll(fs, args, nil)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for i, f := range fonts {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		s, err := f.Summary()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		hash, err := f.Hash()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		ps, _ := f.NameByKey("postscript_name")

		fmt.Fprintf(tw, "file:\t%s\n", f.Path())
		fmt.Fprintf(tw, "format:\t%s\n", s.Format)
		fmt.Fprintf(tw, "family:\t%s\n", f.FamilyName())
		fmt.Fprintf(tw, "style:\t%s\n", f.StyleName())
		fmt.Fprintf(tw, "full name:\t%s\n", s.FullName)
		fmt.Fprintf(tw, "postscript:\t%s\n", ps)
		if v, err := f.Version(); err == nil {
			fmt.Fprintf(tw, "version:\t%.3f\n", v)
		}
		if w, ok := f.Weight(); ok {
			fmt.Fprintf(tw, "weight:\t%d (%s)\n", w.Value, w.Name)
		}
		if w, ok := f.Width(); ok {
			fmt.Fprintf(tw, "width:\t%d (%s, %g%%)\n", w.Value, w.Name, w.Percent)
		}
		if a, ok := f.ItalicAngle(); ok {
			fmt.Fprintf(tw, "italic angle:\t%g\n", a.Value)
		}
		fmt.Fprintf(tw, "style flags:\t%s\n", formatFlags(f))
		fmt.Fprintf(tw, "glyphs:\t%d\n", s.NumGlyphs)
		fmt.Fprintf(tw, "units per em:\t%d\n", s.UnitsPerEm)
		vm := f.VerticalMetrics()
		fmt.Fprintf(tw, "ascent/descent:\t%d/%d (line gap %d)\n", vm.Ascent, vm.Descent, vm.LineGap)
		fmt.Fprintf(tw, "typo ascender/descender:\t%d/%d (line gap %d)\n", vm.TypoAscender, vm.TypoDescender, vm.TypoLineGap)
		fmt.Fprintf(tw, "win ascent/descent:\t%d/%d\n", vm.WinAscent, vm.WinDescent)
		fmt.Fprintf(tw, "x/cap height:\t%d/%d\n", vm.XHeight, vm.CapHeight)
		fmt.Fprintf(tw, "monospace:\t%v\n", f.IsMonospace())
		fmt.Fprintf(tw, "color:\t%v\n", f.IsColor())
		fmt.Fprintf(tw, "variable:\t%v\n", s.Variable)
		fmt.Fprintf(tw, "tables:\t%d (%d bytes)\n", s.Tables, s.Size)
		fmt.Fprintf(tw, "filename:\t%s\n", f.Filename())
		fmt.Fprintf(tw, "xxh3:\t%016x\n", hash)
	}
	return tw.Flush()
}

func formatFlags(f *fontops.Font) string {
	var set []string
	for fl, on := range f.StyleFlags() {
		if on {
			set = append(set, fl.String())
		}
	}
	if len(set) == 0 {
		return "-"
	}
	slices.Sort(set)
	return strings.Join(set, ",")
}

func runAxes(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("axes")
	fonts, err := openAll(fs, args, nil)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, f := range fonts {
		axes, err := f.Axes()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		if len(axes) == 0 {
			fmt.Fprintf(tw, "%s\tstatic\n", f.Path())
			continue
		}
		for _, a := range axes {
			hidden := ""
			if a.Hidden {
				hidden = "hidden"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\t%s\n", f.Path(), a.Tag, a.Name, a.Min, a.Default, a.Max, hidden)
		}
	}
	return tw.Flush()
}

func runInstances(_ context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("instances")
	fonts, err := openAll(fs, args, nil)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	for _, f := range fonts {
		instances, err := f.Instances()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		tags := f.AxisTags()
		for _, inst := range instances {
			coords := make([]string, len(tags))
			for i, tag := range tags {
				coords[i] = fmt.Sprintf("%s=%g", tag, inst.Coordinates[tag])
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Path(), inst.StyleName, inst.PostScriptName, strings.Join(coords, ","))
		}
	}
	return tw.Flush()
}

// outputTarget returns the Save argument for a converted font: the output
// directory, or the directory of the source font.
func outputTarget(dir string, f *fontops.Font) string {
	if dir == "" {
		dir = filepath.Dir(f.Path())
	}
	return dir + string(filepath.Separator)
}

func runStatic(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("static")
	coordsFlag := fs.String("coords", "", "axis values, e.g. wght=700,wdth=75")
	style := fs.String("style", "", "named instance to pin at, instead of -coords")
	out := fs.String("o", "", "output directory (default: next to the source)")
	keepNames := fs.Bool("keep-names", false, "do not rename after the closest instance")
	overwrite := fs.Bool("overwrite", false, "replace existing files")
	instancer := fs.String("instancer", "auto", "instancer: auto, native or fonttools")
	fonts, err := openAll(fs, args, instancer)
	if err != nil {
		return err
	}
	coords, err := parseCoords(*coordsFlag)
	if err != nil {
		return err
	}

	opts := []fontops.InstanceOption{fontops.WithUpdateNames(!*keepNames)}
	if *style != "" {
		opts = append(opts, fontops.WithStyleName(*style))
	}
	for _, f := range fonts {
		if err := f.ToStatic(ctx, coords, opts...); err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		path, err := f.Save(outputTarget(*out, f), *overwrite)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		fmt.Fprintf(stdout, "%s -> %s\n", f.Path(), path)
	}
	return nil
}

func runSlice(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("slice")
	coordsFlag := fs.String("coords", "", "axis limits, e.g. wght=300:700")
	out := fs.String("o", "", "output directory (default: next to the source)")
	overwrite := fs.Bool("overwrite", false, "replace existing files")
	instancer := fs.String("instancer", "auto", "instancer: auto, native or fonttools")
	fonts, err := openAll(fs, args, instancer)
	if err != nil {
		return err
	}
	coords, err := parseCoords(*coordsFlag)
	if err != nil {
		return err
	}

	for _, f := range fonts {
		if err := f.ToSliced(ctx, coords); err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		path, err := f.Save(outputTarget(*out, f), *overwrite)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		fmt.Fprintf(stdout, "%s -> %s\n", f.Path(), path)
	}
	return nil
}

func runExport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("export")
	formatsFlag := fs.String("formats", "woff,woff2", "extra formats besides the source format")
	workers := fs.Int("workers", 0, "instances built in parallel (default GOMAXPROCS)")
	out := fs.String("o", "", "output directory (default: next to the source)")
	overwrite := fs.Bool("overwrite", true, "replace existing files")
	instancer := fs.String("instancer", "auto", "instancer: auto, native or fonttools")
	fonts, err := openAll(fs, args, instancer)
	if err != nil {
		return err
	}
	formats, err := parseFormats(*formatsFlag)
	if err != nil {
		return err
	}

	for _, f := range fonts {
		start := time.Now()
		dir := *out
		if dir == "" {
			dir = filepath.Dir(f.Path())
		}
		exported, err := f.SaveVariableInstances(ctx, dir,
			fontops.WithFormats(formats...),
			fontops.WithWorkers(*workers),
			fontops.WithOverwrite(*overwrite))
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path(), err)
		}
		for _, e := range exported {
			fmt.Fprintf(stdout, "%-24s %016x", e.Instance.StyleName, e.Hash)
			for _, format := range slices.Sorted(maps.Keys(e.Files)) {
				fmt.Fprintf(stdout, " %s", e.Files[format])
			}
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "%s: %d instances in %s\n", f.Path(), len(exported),
			durafmt.Parse(time.Since(start)).LimitFirstN(2))
	}
	return nil
}

func runSanitize(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("sanitize")
	strict := fs.Bool("strict", false, "treat sanitizer warnings as errors")
	fonts, err := openAll(fs, args, nil)
	if err != nil {
		return err
	}
	if !(sanitize.Sanitizer{}).Available() {
		return sanitize.ErrNotFound
	}

	var failed []error
	for _, f := range fonts {
		err := f.Sanitize(ctx, *strict)
		var serr *fontops.SanitizationError
		switch {
		case err == nil:
			fmt.Fprintf(stdout, "%s: ok\n", f.Path())
		case errors.As(err, &serr):
			fmt.Fprintf(stdout, "%s: %v\n", f.Path(), serr)
			failed = append(failed, fmt.Errorf("%s: rejected", f.Path()))
		default:
			return err
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d fonts rejected\n", len(failed), len(fonts))
	}
	return errors.Join(failed...)
}
