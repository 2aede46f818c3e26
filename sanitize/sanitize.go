// Package sanitize validates font binaries with the OpenType Sanitizer
// (ots-sanitize), the checker browsers run on web fonts.
//
// The sanitizer is an external executable; Run fails with ErrNotFound when
// it is not installed.
package sanitize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultCommand is the sanitizer executable looked up on PATH.
const DefaultCommand = "ots-sanitize"

// successLine is printed on stdout by a clean run.
const successLine = "File sanitized successfully!"

// ErrNotFound is returned when the sanitizer executable is not installed.
var ErrNotFound = errors.New("sanitize: ots-sanitize not found")

// Error reports a font rejected by the sanitizer.
type Error struct {
	// ExitCode is the sanitizer exit status; 0 when a strict run failed on
	// warnings alone.
	ExitCode int

	// Output holds stderr for a failed run, the warnings for a strict one.
	Output string
}

func (e *Error) Error() string {
	if e.ExitCode == 0 {
		return "sanitize: OpenType Sanitizer warnings:\n" + e.Output
	}
	return fmt.Sprintf("sanitize: OpenType Sanitizer returned non-zero exit code (%d):\n%s", e.ExitCode, e.Output)
}

// Warnings reports whether the error comes from warnings in strict mode
// rather than from a rejected font.
func (e *Error) Warnings() bool { return e.ExitCode == 0 }

// Sanitizer runs an OpenType Sanitizer executable.
type Sanitizer struct {
	// Command overrides DefaultCommand.
	Command string
}

func (s Sanitizer) command() string {
	if s.Command != "" {
		return s.Command
	}
	return DefaultCommand
}

// Available reports whether the sanitizer executable can be found.
func (s Sanitizer) Available() bool {
	_, err := exec.LookPath(s.command())
	return err == nil
}

// Run sanitizes the encoded font data. A non-zero exit status yields an
// *Error; in strict mode so does any output besides the success line.
func (s Sanitizer) Run(ctx context.Context, data []byte, strict bool) error {
	bin, err := exec.LookPath(s.command())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	dir, err := os.MkdirTemp("", "fontops-sanitize-*")
	if err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}
	defer os.RemoveAll(dir)

	ext := extension(data)
	src := filepath.Join(dir, "font"+ext)
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, src, filepath.Join(dir, "sanitized"+ext))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		return &Error{ExitCode: exitErr.ExitCode(), Output: stderr.String()}
	case err != nil:
		return fmt.Errorf("sanitize: %w", err)
	}

	if strict {
		if warnings := warningsOf(stdout.String()); warnings != "" {
			return &Error{Output: warnings}
		}
	}
	return nil
}

// warningsOf strips the success line from the sanitizer stdout.
func warningsOf(stdout string) string {
	var lines []string
	for line := range strings.Lines(stdout) {
		line = strings.TrimRight(line, "\r\n")
		if line != "" && line != successLine {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// extension picks a file extension from the font signature.
func extension(data []byte) string {
	if len(data) < 4 {
		return ".ttf"
	}
	switch string(data[:4]) {
	case "wOFF":
		return ".woff"
	case "wOF2":
		return ".woff2"
	case "OTTO":
		return ".otf"
	case "ttcf":
		return ".ttc"
	default:
		return ".ttf"
	}
}

// Run sanitizes data with the default sanitizer.
func Run(ctx context.Context, data []byte, strict bool) error {
	return Sanitizer{}.Run(ctx, data, strict)
}
