/*
Package versioneer provides release version parsing and bump classification.

Usage:

	cur, err := versioneer.NewVersion("1.1.0-4")
	next, err := versioneer.NewVersion("1.2.0")
	kind, err := versioneer.Classify(cur, next) // versioneer.BumpMinor
*/
package versioneer

// Version represents a fixed release version (e.g. '1.0.3' or '1.0.3-12').
type Version interface {
	Major() uint64              // Major method returns integer value of the major version segment (e.g. '?.0.0')
	Minor() uint64              // Minor method returns integer value of the minor version segment (e.g. '0.?.0')
	Patch() uint64              // Patch method returns integer value of the patch version segment (e.g. '0.0.?')
	Prerelease() (uint64, bool) // Prerelease method returns the numeric prerelease suffix (e.g. '0.0.0-?'), if any.
	Value() string              // Value method returns original unmodified raw value of the version.
}

// BumpKind represents the magnitude of change between two versions.
type BumpKind string

// Available bump kinds
const (
	BumpPatch = BumpKind("patch")
	BumpMinor = BumpKind("minor")
	BumpMajor = BumpKind("major")
)

func (k BumpKind) String() string {
	return string(k)
}
