package fontops

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/gogpu/fontops/internal/parallel"
	"github.com/gogpu/fontops/sfnt"
	"github.com/gogpu/fontops/variation"
)

// ExportedInstance describes one static font written by
// SaveVariableInstances.
type ExportedInstance struct {
	Instance variation.NamedInstance

	// Files maps each written format to its path.
	Files map[sfnt.Format]string

	// Hash is the XXH3 hash of the static font as plain SFNT.
	Hash uint64
}

// SaveVariableInstances writes a static font for every named instance of
// the font into dir: one file in the source format plus one per extra
// format (WOFF and WOFF2 by default). Instances are built in parallel on
// independent clones; the font itself is not modified.
//
// Results follow the fvar instance order. On failure the files already
// written are left in place and every instance error is returned joined.
func (f *Font) SaveVariableInstances(ctx context.Context, dir string, opts ...ExportOption) ([]ExportedInstance, error) {
	const op = "export instances"
	if !f.IsVariable() {
		return nil, &OperationError{Op: op, Msg: "only a variable font can be instantiated"}
	}
	cfg := defaultExportConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, &ArgumentError{Op: op, Msg: fmt.Sprintf("%q is a file", dir)}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("fontops: %s: %w", op, err)
	}

	instances, err := f.Instances()
	if err != nil {
		return nil, err
	}
	formats := exportFormats(f.Format(), cfg.formats)

	pool := parallel.NewWorkerPool(cfg.workers)
	defer pool.Close()

	results := make([]ExportedInstance, len(instances))
	jobs := make([]parallel.Job, len(instances))
	for i, inst := range instances {
		src := f.Clone()
		jobs[i] = func(ctx context.Context) error {
			res, err := src.exportInstance(ctx, dir, inst, formats, cfg)
			if err != nil {
				return fmt.Errorf("fontops: instance %q: %w", inst.StyleName, err)
			}
			results[i] = res
			return nil
		}
	}
	if err := pool.Run(ctx, jobs); err != nil {
		return nil, err
	}
	return results, nil
}

// exportInstance pins f, which must be a private clone, at inst and saves
// it in every format.
func (f *Font) exportInstance(ctx context.Context, dir string, inst variation.NamedInstance, formats []sfnt.Format, cfg exportConfig) (ExportedInstance, error) {
	if err := f.ToStatic(ctx, variation.Pinned(inst.Coordinates), cfg.instance...); err != nil {
		return ExportedInstance{}, err
	}
	if err := f.Rename("", inst.StyleName, true); err != nil {
		return ExportedInstance{}, err
	}

	res := ExportedInstance{Instance: inst, Files: make(map[sfnt.Format]string, len(formats))}
	for _, format := range formats {
		path, err := f.SaveAs(dir+string(os.PathSeparator), format, cfg.overwrite)
		if err != nil {
			return ExportedInstance{}, err
		}
		res.Files[format] = path
	}
	hash, err := f.Hash()
	if err != nil {
		return ExportedInstance{}, err
	}
	res.Hash = hash
	Logger().Info("fontops: exported instance", "style", inst.StyleName, "files", len(res.Files))
	return res, nil
}

// exportFormats returns source followed by the extra formats, without
// duplicates.
func exportFormats(source sfnt.Format, extra []sfnt.Format) []sfnt.Format {
	formats := []sfnt.Format{source}
	for _, format := range extra {
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}
	return formats
}
