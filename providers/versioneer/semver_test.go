package versioneer

import (
	"errors"
	"testing"
)

func TestReleaseVersion_Parts(t *testing.T) {
	raw := "1.2.3"
	version, err := NewVersion(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version.Major() != 1 || version.Minor() != 2 || version.Patch() != 3 || version.Value() != raw {
		t.Errorf("version '%q' parsed incorrectly, got '%+v'", raw, version)
	}
	if _, ok := version.Prerelease(); ok {
		t.Errorf("version %q must not have a prerelease", raw)
	}
}

func TestReleaseVersion_Prerelease(t *testing.T) {
	version, err := NewVersion("1.0.0-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pre, ok := version.Prerelease()
	if !ok || pre != 12 {
		t.Errorf("unexpected prerelease, got %d (present: %v)", pre, ok)
	}
	if version.Major() != 1 || version.Minor() != 0 || version.Patch() != 0 {
		t.Errorf("version parsed incorrectly, got '%+v'", version)
	}
}

func TestReleaseVersion_Error(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1.2",
		"v1.2.3",
		"1.2.3.4",
		"1.2.x",
		"1.2.3-",
		"1.2.3-beta",
		"1.2.3-1.2",
		"1.2.3+build",
		"-1.2.3",
		"01.2.3",
		"1.2.3-01",
		" 1.2.3",
		"99999999999999999999.0.0",
	}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			version, err := NewVersion(raw)
			if err == nil {
				t.Fatalf("expected error on invalid version %q, got none", raw)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected ParseError, got %T: %v", err, err)
			}
			if version != nil {
				t.Errorf("expected nil version on error, got '%+v'", version)
			}
		})
	}
}
