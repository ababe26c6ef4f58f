// file: internal/organizer/fileops.go
// version: 1.2.0
// guid: 1d3e5f7a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrDestinationExists is returned when a safe move would overwrite
// existing data. The caller skips, never overwrites.
var ErrDestinationExists = errors.New("destination already exists")

// SafeMove moves src (file or directory) to dst. dst must not exist. A
// rename is attempted first; cross-device or permission failures fall back
// to copy-then-delete, where the source is only removed after the copy
// fully succeeded. With copy set, the source is always left in place.
func SafeMove(src, dst string, copy bool) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", dst, err)
	}

	if copy {
		return copyAny(src, dst)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Cross-device or access-denied rename: copy, then delete the source.
	if err := copyAny(src, dst); err != nil {
		return err
	}
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("removing source after copy %s: %w", src, err)
	}
	return nil
}

// copyAny copies a file or a whole directory tree.
func copyAny(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return copyTree(src, dst)
	}
	return copyFile(src, dst)
}

// copyTree recursively copies a directory.
func copyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	for _, e := range entries {
		srcPath := filepath.Join(src, e.Name())
		dstPath := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies one file, syncing before close and preserving permissions.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := destFile.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", dst, err)
	}

	if info, err := os.Stat(src); err == nil {
		_ = os.Chmod(dst, info.Mode())
	}
	return nil
}
