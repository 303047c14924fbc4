package versioneer

import "fmt"

// ParseError is returned when a version string is not of the
// 'MAJOR.MINOR.PATCH' or 'MAJOR.MINOR.PATCH-PRERELEASE' form,
// or when no version string could be extracted from its source (Value is then empty).
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Value == "" && e.Err != nil {
		return fmt.Sprintf("unable to read version: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("version %q is not supported: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("version %q is not supported", e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BumpError is returned when the difference between two versions
// is not exactly one recognized bump.
type BumpError struct {
	Current string
	Next    string
}

func (e *BumpError) Error() string {
	return fmt.Sprintf("invalid bump: %s -> %s", e.Current, e.Next)
}
