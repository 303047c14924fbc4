package fetchers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFetcher reads files from a working tree on disk.
// Root is the directory every path is resolved against.
type LocalFetcher struct {
	Root string
}

// NewLocalFetcher constructs LocalFetcher rooted at the given directory.
func NewLocalFetcher(root string) FileFetcher {
	return &LocalFetcher{Root: root}
}

// FileContent reads the file located at path relative to the fetcher root.
func (lf LocalFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(lf.Root, path)
	}

	b, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to read '%s' file: %w", path, err)
	}
	return b, nil
}
