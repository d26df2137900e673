package errmsg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/music/out.mp3", Err: fs.ErrPermission}

	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpDownload,
			err:      nil,
			expected: "",
		},
		{
			name:     "plain error",
			op:       OpPreferenceSave,
			err:      errors.New("database is locked"),
			expected: "Failed to save layout preference: database is locked",
		},
		{
			name:     "path error",
			op:       OpDownload,
			err:      pathErr,
			expected: "Failed to download track: permission denied (/music/out.mp3)",
		},
		{
			name:     "wrapped path error",
			op:       OpDownload,
			err:      fmt.Errorf("write temp file: %w", pathErr),
			expected: "Failed to download track: permission denied (/music/out.mp3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormat_ReadPayload(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "track.b64")
	_, err := os.ReadFile(missing)

	want := "Failed to read audio payload: no such file or directory (" + missing + ")"
	if got := Format(OpReadPayload, err); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
