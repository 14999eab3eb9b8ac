// Package source reads and writes the content compared by the two sides:
// files on disk and files at a git revision.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrBinary is returned for content that does not look like text.
var ErrBinary = errors.New("binary content")

// MaxFileSize bounds what ReadFile will load.
const MaxFileSize = 64 << 20

// binarySniffLen matches git's heuristic: a NUL in the first 8000 bytes.
const binarySniffLen = 8000

// ReadFile loads a text file.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if isBinary(data) {
		return "", fmt.Errorf("%s: %w", path, ErrBinary)
	}
	return string(data), nil
}

// WriteFile replaces the content of path, keeping its permissions when it
// already exists. The write goes through a temporary file in the same
// directory so a failed save leaves the original intact.
func WriteFile(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
