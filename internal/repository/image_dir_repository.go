package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageDirectory lists the image files available to cards.
type ImageDirectory struct {
	dir string
}

// NewImageDirectory constructs an ImageDirectory.
func NewImageDirectory(dir string) *ImageDirectory {
	return &ImageDirectory{dir: dir}
}

// Dir returns the directory being listed.
func (d *ImageDirectory) Dir() string {
	return d.dir
}

// Stems returns the sorted file names without extension. Directories and hidden files are skipped.
func (d *ImageDirectory) Stems(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	stems := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	sort.Strings(stems)
	return stems, nil
}
