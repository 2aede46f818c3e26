package sanitize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gogpu/fontops/internal/fonttest"
)

// fakeSanitizer writes a shell script standing in for ots-sanitize.
func fakeSanitizer(t *testing.T, script string) Sanitizer {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake sanitizer needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ots-sanitize")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return Sanitizer{Command: path}
}

func TestSanitizer_Run(t *testing.T) {
	tests := []struct {
		name         string
		script       string
		strict       bool
		wantErr      bool
		wantCode     int
		wantWarnings bool
		wantOutput   string
	}{
		{
			name:   "clean",
			script: `echo "File sanitized successfully!"`,
			strict: true,
		},
		{
			name:   "warnings lenient",
			script: "echo 'WARNING: cmap: dropped'\necho 'File sanitized successfully!'",
		},
		{
			name:         "warnings strict",
			script:       "echo 'WARNING: cmap: dropped'\necho 'File sanitized successfully!'",
			strict:       true,
			wantErr:      true,
			wantWarnings: true,
			wantOutput:   "WARNING: cmap: dropped",
		},
		{
			name:       "rejected",
			script:     "echo 'ERROR: glyf: bad' >&2\nexit 1",
			wantErr:    true,
			wantCode:   1,
			wantOutput: "ERROR: glyf: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fakeSanitizer(t, tt.script)
			err := s.Run(context.Background(), fonttest.Static(), tt.strict)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Run() error = %v", err)
				}
				return
			}

			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("Run() error = %v, want *Error", err)
			}
			if serr.ExitCode != tt.wantCode || serr.Warnings() != tt.wantWarnings {
				t.Errorf("Error = %+v", serr)
			}
			if !strings.Contains(serr.Output, tt.wantOutput) {
				t.Errorf("Output = %q, want it to contain %q", serr.Output, tt.wantOutput)
			}
		})
	}
}

func TestSanitizer_Arguments(t *testing.T) {
	s := fakeSanitizer(t, `case "$1" in *.woff2) echo "File sanitized successfully!" ;; *) exit 3 ;; esac`)
	woff2 := append([]byte("wOF2"), make([]byte, 44)...)
	if err := s.Run(context.Background(), woff2, true); err != nil {
		t.Errorf("Run() error = %v, want the input to carry a .woff2 extension", err)
	}
}

func TestSanitizer_NotFound(t *testing.T) {
	s := Sanitizer{Command: "ots-sanitize-does-not-exist"}
	if s.Available() {
		t.Fatal("Available() = true")
	}
	if err := s.Run(context.Background(), fonttest.Static(), false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Run() error = %v, want ErrNotFound", err)
	}
}

func TestRun_Installed(t *testing.T) {
	if !(Sanitizer{}).Available() {
		t.Skip("ots-sanitize not installed")
	}
	// the synthetic font may be rejected, but the sanitizer must have run
	var serr *Error
	if err := Run(context.Background(), fonttest.Static(), false); err != nil && !errors.As(err, &serr) {
		t.Errorf("Run() error = %v", err)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"wOFF":             ".woff",
		"wOF2":             ".woff2",
		"OTTO":             ".otf",
		"ttcf":             ".ttc",
		"\x00\x01\x00\x00": ".ttf",
		"":                 ".ttf",
	}
	for sig, want := range tests {
		if got := extension([]byte(sig)); got != want {
			t.Errorf("extension(%q) = %q, want %q", sig, got, want)
		}
	}
}
