package parsers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dephub/dephub-release/providers/fetchers"
)

// NewNextVersionParser constructs plain text next version file parser.
// If 'filename' parameter is an empty string - '.versions/next.txt' will be used instead.
func NewNextVersionParser(fetcher fetchers.FileFetcher, filename string) *NextVersionParser {
	if filename == "" {
		filename = DefaultNextVersionPath
	}
	return &NextVersionParser{fetcher: fetcher, SourceName: filename}
}

// NextVersionParser reads the proposed next version.
type NextVersionParser struct {
	fetcher    fetchers.FileFetcher
	SourceName string
}

// Version method returns the file content with surrounding whitespace removed.
func (c NextVersionParser) Version(ctx context.Context) (string, error) {
	b, err := c.fetcher.FileContent(ctx, c.SourceName)
	if err != nil {
		if errors.Is(err, fetchers.ErrFileNotFound) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("unable to fetch next version from the source: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
