package versioneer

// Classify determines which single segment was bumped between current and next.
//
// Next must be a final release. A prerelease current version may be followed by
// the next patch release (e.g. '1.0.0-1' -> '1.0.1').
func Classify(current, next Version) (BumpKind, error) {
	if _, ok := next.Prerelease(); ok {
		return "", bumpError(current, next)
	}

	if _, ok := current.Prerelease(); ok && isPatchBump(current, next) {
		return BumpPatch, nil
	}

	switch true {
	case next.Major() == current.Major()+1 && next.Minor() == 0 && next.Patch() == 0:
		return BumpMajor, nil
	case next.Major() == current.Major() && next.Minor() == current.Minor()+1 && next.Patch() == 0:
		return BumpMinor, nil
	case isPatchBump(current, next):
		return BumpPatch, nil
	}

	return "", bumpError(current, next)
}

func isPatchBump(current, next Version) bool {
	return next.Major() == current.Major() && next.Minor() == current.Minor() && next.Patch() == current.Patch()+1
}

func bumpError(current, next Version) error {
	return &BumpError{Current: current.Value(), Next: next.Value()}
}
