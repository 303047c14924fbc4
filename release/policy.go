package release

import (
	"fmt"

	"github.com/dephub/dephub-release/providers/versioneer"
)

// MainBranch is the only branch allowed to carry minor and major bumps.
const MainBranch = "main"

// BranchError is returned when the branch does not satisfy the policy of the bump kind.
type BranchError struct {
	Kind     versioneer.BumpKind
	Branch   string
	Expected string
}

func (e *BranchError) Error() string {
	return fmt.Sprintf("invalid branch for %s bump: got %q, expected %q", e.Kind, e.Branch, e.Expected)
}

// branchRule returns the branch name required for a bump off the current version.
type branchRule func(current versioneer.Version) string

// branchPolicy maps every bump kind to its required branch.
var branchPolicy = map[versioneer.BumpKind]branchRule{
	versioneer.BumpMajor: mainBranch,
	versioneer.BumpMinor: mainBranch,
	versioneer.BumpPatch: maintenanceBranch,
}

func mainBranch(versioneer.Version) string {
	return MainBranch
}

// maintenanceBranch - 'v<major>.<minor>.x' of the version being patched
func maintenanceBranch(current versioneer.Version) string {
	return fmt.Sprintf("v%d.%d.x", current.Major(), current.Minor())
}

// RequiredBranch returns the branch name a bump of the given kind must be made on.
func RequiredBranch(kind versioneer.BumpKind, current versioneer.Version) (string, error) {
	rule, ok := branchPolicy[kind]
	if !ok {
		return "", fmt.Errorf("unknown bump kind %q", kind)
	}
	return rule(current), nil
}

// CheckBranch validates the branch against the policy for the bump kind.
func CheckBranch(kind versioneer.BumpKind, current versioneer.Version, branch string) error {
	expected, err := RequiredBranch(kind, current)
	if err != nil {
		return err
	}
	if branch != expected {
		return &BranchError{Kind: kind, Branch: branch, Expected: expected}
	}
	return nil
}
