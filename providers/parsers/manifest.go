package parsers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dephub/dephub-release/providers/fetchers"
)

// NewManifestParser constructs JSON manifest parser.
// If 'filename' parameter is an empty string - 'package.json' will be used instead.
func NewManifestParser(fetcher fetchers.FileFetcher, filename string) *ManifestParser {
	if filename == "" {
		filename = DefaultManifestPath
	}
	return &ManifestParser{fetcher: fetcher, SourceName: filename}
}

// ManifestParser represents concrete JSON manifest parser implementation.
type ManifestParser struct {
	fetcher fetchers.FileFetcher
	// SourceName is the source filename (e.g. 'package.json')
	SourceName string
}

// Raw method returns unparsed manifest file content.
func (c ManifestParser) Raw(ctx context.Context) (string, error) {
	b, err := c.fetcher.FileContent(ctx, c.SourceName)
	if err != nil {
		if errors.Is(err, fetchers.ErrFileNotFound) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("unable to fetch manifest from the source: %w", err)
	}
	return string(b), nil
}

// Manifest method returns the decoded manifest.
func (c ManifestParser) Manifest(ctx context.Context) (*Manifest, error) {
	raw, err := c.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return ParseManifest(raw)
}

// Version method returns manifest version field.
func (c ManifestParser) Version(ctx context.Context) (string, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return "", err
	}
	return m.Version, nil
}

// ParseManifest decodes a JSON manifest blob, the version field is required.
func ParseManifest(blob string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		return nil, fmt.Errorf("unable to parse manifest file content: %w", err)
	}
	if strings.TrimSpace(m.Version) == "" {
		return nil, ErrNoVersion
	}
	return &m, nil
}
