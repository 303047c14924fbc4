package versioneer

import (
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"
)

/*
Release versions parsing implementation.
*/

// releaseVersionRgx only allows three numeric segments with an optional numeric prerelease suffix.
// Wider semver syntax (build metadata, dotted or alphanumeric prereleases) is rejected.
var releaseVersionRgx = `^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(-(0|[1-9][0-9]*))?$`

// releaseVersionRgxCompiled is compiled from releaseVersionRgx.
var releaseVersionRgxCompiled *regexp.Regexp

func init() {
	releaseVersionRgxCompiled = regexp.MustCompile(releaseVersionRgx)
}

// NewVersion constructs ready-to-use release Version instance.
func NewVersion(value string) (Version, error) {
	if !releaseVersionRgxCompiled.MatchString(value) {
		return nil, &ParseError{Value: value}
	}

	sv, err := semver.StrictNewVersion(value)
	if err != nil {
		return nil, &ParseError{Value: value, Err: err}
	}

	rv := ReleaseVersion{ver: sv}
	if pre := sv.Prerelease(); pre != "" {
		if rv.pre, err = strconv.ParseUint(pre, 10, 64); err != nil {
			return nil, &ParseError{Value: value, Err: err}
		}
		rv.hasPre = true
	}

	return rv, nil
}

// ReleaseVersion represent Version implementation backed by a strict semantic version.
type ReleaseVersion struct {
	ver    *semver.Version
	pre    uint64
	hasPre bool
}

// Value method returns original unmodified raw value of the version.
func (rv ReleaseVersion) Value() string {
	return rv.ver.Original()
}

// Major method returns integer value of the major version segment (e.g. '?.0.0')
func (rv ReleaseVersion) Major() uint64 {
	return rv.ver.Major()
}

// Minor method returns integer value of the minor version segment (e.g. '0.?.0')
func (rv ReleaseVersion) Minor() uint64 {
	return rv.ver.Minor()
}

// Patch method returns integer value of the patch version segment (e.g. '0.0.?')
func (rv ReleaseVersion) Patch() uint64 {
	return rv.ver.Patch()
}

// Prerelease method returns the numeric prerelease suffix, ok is false for final releases.
func (rv ReleaseVersion) Prerelease() (uint64, bool) {
	return rv.pre, rv.hasPre
}

func (rv ReleaseVersion) String() string {
	return rv.ver.String()
}
