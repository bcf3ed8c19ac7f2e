package content

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// SourceFile is a markdown file found under the content directory.
type SourceFile struct {
	RelPath string // Relative to the content root, forward slashes (e.g. "posts/2024-01-01-hello.md")
	AbsPath string
}

// Scan walks root and returns every markdown file in lexical order.
// Hidden files and directories (starting with ".") are skipped.
func Scan(ctx context.Context, root string) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		files = append(files, SourceFile{
			RelPath: filepath.ToSlash(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return files, fmt.Errorf("failed to scan content directory %s: %w", root, err)
	}

	return files, nil
}
