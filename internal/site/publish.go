package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// newStaging creates an empty staging directory next to outputDir so the
// final rename stays on one filesystem.
func newStaging(outputDir string) (string, error) {
	parent := filepath.Dir(filepath.Clean(outputDir))
	if err := os.MkdirAll(parent, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create output parent %s: %w", parent, err)
	}
	dir, err := os.MkdirTemp(parent, "."+filepath.Base(outputDir)+"-staging-")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// publish replaces outputDir with staging. The previous output is moved
// aside first and restored if the swap fails.
func publish(staging, outputDir, buildID string) error {
	outputDir = filepath.Clean(outputDir)

	if _, err := os.Stat(outputDir); errors.Is(err, fs.ErrNotExist) {
		if err := os.Rename(staging, outputDir); err != nil {
			return fmt.Errorf("failed to publish output: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to stat output directory: %w", err)
	}

	old := filepath.Join(filepath.Dir(outputDir), "."+filepath.Base(outputDir)+"-old-"+buildID)
	if err := os.Rename(outputDir, old); err != nil {
		return fmt.Errorf("failed to move previous output aside: %w", err)
	}
	if err := os.Rename(staging, outputDir); err != nil {
		if restoreErr := os.Rename(old, outputDir); restoreErr != nil {
			return fmt.Errorf("failed to publish output: %w (restore failed: %v)", err, restoreErr)
		}
		return fmt.Errorf("failed to publish output: %w", err)
	}
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("failed to remove previous output: %w", err)
	}
	return nil
}

// copyDir copies the files under src into dst. A missing src is not an error.
func copyDir(src, dst string) (int, error) {
	if src == "" {
		return 0, nil
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}

		if err := copyFile(path, dstPath); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("failed to copy static files: %w", err)
	}
	return copied, nil
}

func copyFile(srcFile, dstFile string) error {
	f, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer f.Close()

	if err := atomic.WriteFile(dstFile, f); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", srcFile, dstFile, err)
	}
	return nil
}
