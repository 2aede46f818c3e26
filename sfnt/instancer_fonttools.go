package sfnt

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gogpu/fontops/variation"
)

// DefaultFontToolsCommand is the executable run by FontToolsInstancer.
const DefaultFontToolsCommand = "fonttools"

// FontToolsInstancer runs "fonttools varLib.instancer" in a subprocess.
// It supports slicing, pinning and every overlap mode.
type FontToolsInstancer struct {
	// Command overrides DefaultFontToolsCommand.
	Command string
}

func (in *FontToolsInstancer) command() string {
	if in.Command != "" {
		return in.Command
	}
	return DefaultFontToolsCommand
}

// Available reports whether the fonttools executable is on PATH.
func (in *FontToolsInstancer) Available() bool {
	_, err := exec.LookPath(in.command())
	return err == nil
}

// Instantiate implements Instancer.
func (in *FontToolsInstancer) Instantiate(ctx context.Context, f *Font, req Request) (*Font, error) {
	bin, err := exec.LookPath(in.command())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}

	dir, err := os.MkdirTemp("", "fontops-instancer-*")
	if err != nil {
		return nil, fmt.Errorf("sfnt: fonttools instancer: %w", err)
	}
	defer os.RemoveAll(dir)

	format := f.OutlineFormat()
	src := filepath.Join(dir, "input"+format.Extension())
	dst := filepath.Join(dir, "output"+format.Extension())
	data, err := f.Encode(format)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return nil, fmt.Errorf("sfnt: fonttools instancer: %w", err)
	}

	args := FontToolsArgs(src, dst, req)
	Logger().Debug("sfnt: run fonttools", "args", args)

	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("sfnt: fonttools instancer: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	result, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("sfnt: fonttools instancer: %w", err)
	}
	out, err := Parse(result)
	if err != nil {
		return nil, err
	}
	out.source = f.source
	return out, nil
}

// FontToolsArgs builds the varLib.instancer command line for req.
func FontToolsArgs(src, dst string, req Request) []string {
	args := []string{"varLib.instancer", src}
	for _, tag := range slices.Sorted(maps.Keys(req.Limits)) {
		args = append(args, tag+"="+formatLimit(req.Limits[tag]))
	}
	args = append(args, "-o", dst)

	switch req.Overlap {
	case OverlapKeepAndDontSetFlags:
		args = append(args, "--no-overlap-flag")
	case OverlapRemove:
		args = append(args, "--remove-overlaps")
	case OverlapRemoveAndIgnoreErrors:
		args = append(args, "--remove-overlaps", "--ignore-overlap-errors")
	}
	if !req.Optimize {
		args = append(args, "--no-optimize")
	}
	if req.UpdateFontNames {
		args = append(args, "--update-name-table")
	}
	if req.Static {
		args = append(args, "--static")
	}
	return args
}

// formatLimit renders a triple as "v" when pinned and "min:default:max"
// otherwise.
func formatLimit(t variation.Triple) string {
	if t.IsPinned() {
		return formatFloat(t.Min)
	}
	return formatFloat(t.Min) + ":" + formatFloat(t.Default) + ":" + formatFloat(t.Max)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
