package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateScratchDir creates a fresh, uniquely named scratch directory for one
// pipeline run. The caller owns the directory exclusively and must release it
// with Cleanup on every exit path.
func CreateScratchDir(prefix string) (string, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

// Cleanup removes a scratch file or directory. Cleanup failures are returned
// but callers treat them as warnings, never as pipeline errors.
func Cleanup(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// SafeFilename derives a filesystem-safe name from an arbitrary upload name.
func SafeFilename(filename string) string {
	const safeChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789._-"

	var b strings.Builder
	for _, c := range filename {
		if strings.ContainsRune(safeChars, c) {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	safe := b.String()

	if safe != "" && !isAlnum(rune(safe[0])) {
		safe = "file_" + safe
	}

	if len(safe) > 100 {
		ext := filepath.Ext(safe)
		name := safe[:len(safe)-len(ext)]
		maxName := 100 - len(ext)
		if maxName < 0 {
			maxName = 0
		}
		if len(name) > maxName {
			name = name[:maxName]
		}
		safe = name + ext
	}

	if safe == "" {
		safe = "uploaded_file"
	}
	return safe
}

// Extension returns the lowercased file extension without the leading dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// IsSupportedFormat reports whether the filename carries one of the supported
// container/codec extensions.
func IsSupportedFormat(filename string, supported []string) bool {
	ext := Extension(filename)
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

// FormatSize renders a byte count in human-readable form.
func FormatSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
