/*
Package parsers provides parsers for release version source files.

Goals:
  - Reading the current version from a JSON manifest (e.g. 'package.json')
  - Reading the proposed next version from a plain text file (e.g. '.versions/next.txt')
*/
package parsers

import (
	"context"
	"errors"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoVersion    = errors.New("version field is missing or empty")
)

// Default source file paths.
const (
	DefaultManifestPath    = "package.json"
	DefaultNextVersionPath = ".versions/next.txt"
)

// VersionParser represents basic interface for parsers in this package.
type VersionParser interface {
	// Version returns the raw, unparsed version string from the source file.
	Version(context.Context) (string, error)
}

// Manifest represents the subset of a JSON manifest used for releases.
type Manifest struct {
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
	Version   string `json:"version"`
}

var (
	_ VersionParser = (*ManifestParser)(nil)
	_ VersionParser = (*NextVersionParser)(nil)
)
