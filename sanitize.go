package fontops

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/fontops/sanitize"
)

// Sanitize runs the font, encoded in its source format, through the
// OpenType Sanitizer. A rejected font yields *SanitizationError; in strict
// mode sanitizer warnings do too.
func (f *Font) Sanitize(ctx context.Context, strict bool) error {
	data, err := f.Bytes()
	if err != nil {
		return err
	}
	err = sanitize.Run(ctx, data, strict)
	var serr *SanitizationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &serr):
		Logger().Debug("fontops: sanitizer rejected font", "font", f.path, "exit", serr.ExitCode)
		return serr
	default:
		return fmt.Errorf("fontops: sanitize: %w", err)
	}
}
