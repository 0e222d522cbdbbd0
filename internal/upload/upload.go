// Package upload stores user-submitted files under a flat directory.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	apperrors "inkwell/internal/errors"
)

// Saver writes uploaded files into a single configured directory.
// Collisions are last-write-wins: two uploads with the same sanitized name
// overwrite each other.
type Saver struct {
	dir string
}

// NewSaver creates a saver rooted at dir.
func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// Store writes the uploaded file and returns its sanitized name. A nil
// file or empty filename returns ("", nil), which callers treat as
// "no change". Write failures wrap ErrStorageWrite.
func (s *Saver) Store(file *multipart.FileHeader) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}
	name := SanitizeFilename(file.Filename)
	if name == "" {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: create %q: %v", apperrors.ErrStorageWrite, name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%w: write %q: %v", apperrors.ErrStorageWrite, name, err)
	}
	return name, nil
}

// SanitizeFilename strips path components and unsafe characters from a
// client-supplied filename, preserving the extension. Returns "" when
// nothing safe remains.
func SanitizeFilename(name string) string {
	// Windows clients send backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	// A leading dot would produce a hidden file or a dot-dot name.
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return ""
	}
	return cleaned
}
