// Package fileutil writes hand-history files without ever exposing a partial write.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces filename with data. The data goes to a temporary file in
// the same directory which is then renamed over filename, so readers see either the
// old contents or the new, never a mix.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// AppendFileAtomic rewrites filename with data added to the end of its current
// contents. A missing file is created.
func AppendFileAtomic(filename string, data []byte, perm os.FileMode) error {
	existing, err := os.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return WriteFileAtomic(filename, append(existing, data...), perm)
}
