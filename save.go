package fontops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gogpu/fontops/sfnt"
)

// Save writes the font in its source format and returns the path written.
//
// path may be a file or a directory; a directory (an existing one, or a
// path ending in a separator or without a font extension) receives
// Filename(). The extension always follows the format. An empty path
// reuses the path the font was opened from.
//
// Save fails with *ArgumentError when the target exists and overwrite is
// false.
func (f *Font) Save(path string, overwrite bool) (string, error) {
	return f.SaveAs(path, f.Format(), overwrite)
}

// SaveAs is Save with an explicit output format.
func (f *Font) SaveAs(path string, format sfnt.Format, overwrite bool) (string, error) {
	target, err := f.targetPath(path, format)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", &ArgumentError{Op: "save", Msg: fmt.Sprintf("file %q exists and overwrite is false", target)}
		}
	}

	data, err := f.encode(format)
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(target, data); err != nil {
		return "", fmt.Errorf("fontops: save: %w", err)
	}
	Logger().Info("fontops: saved font", "path", target, "format", format.String(), "size", len(data))
	return target, nil
}

// targetPath resolves the file Save writes for path and format.
func (f *Font) targetPath(path string, format sfnt.Format) (string, error) {
	if path == "" {
		path = f.path
	}
	if path == "" {
		return "", &ArgumentError{Op: "save", Err: ErrNoPath}
	}

	var dir, base string
	if isDirTarget(path) {
		dir = path
		base = strings.TrimSuffix(f.Filename(), f.Format().Extension())
	} else {
		dir, base = filepath.Split(path)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, base+format.Extension()), nil
}

func isDirTarget(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) || strings.HasSuffix(path, "/") {
		return true
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	_, err := sfnt.ParseFormat(filepath.Ext(path))
	return err != nil
}

// writeFile is replaced in tests to simulate failing writes.
var writeFile = os.WriteFile

// writeFileAtomic writes data next to path and renames it into place, so
// readers never see a partial font. The temporary file is removed on
// failure.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := writeFile(tmp, data, 0o644); err != nil {
		return errors.Join(err, removeIfExists(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Join(err, removeIfExists(tmp))
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// WriteTo writes the font in its source format to w.
func (f *Font) WriteTo(w io.Writer) (int64, error) {
	data, err := f.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
