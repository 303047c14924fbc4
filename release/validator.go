/*
Package release validates proposed release version bumps in CI.

The validator reads the current version out of a JSON manifest and the proposed
next version out of a plain text source, classifies the bump and enforces the
branch policy for the bump kind:

	major, minor -> 'main'
	patch        -> 'v<major>.<minor>.x' of the current version
*/
package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dephub/dephub-release/providers/parsers"
	"github.com/dephub/dephub-release/providers/versioneer"
)

// Reader produces the raw content of a version source.
type Reader func() (string, error)

// StaticReader returns a Reader that always yields s.
func StaticReader(s string) Reader {
	return func() (string, error) { return s, nil }
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used to report validation stages.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithTagLookup makes validation fail when the next version tag already exists.
func WithTagLookup(tags TagLookup) Option {
	return func(v *Validator) {
		v.tags = tags
	}
}

// WithRegistryLookup makes validation fail when the next version is already published.
func WithRegistryLookup(registry RegistryLookup) Option {
	return func(v *Validator) {
		v.registry = registry
	}
}

// Validator checks one proposed bump. It holds no state between Validate calls.
type Validator struct {
	current  Reader
	next     Reader
	branch   string
	tags     TagLookup
	registry RegistryLookup
	logger   *zap.Logger
}

// NewValidator constructs a Validator.
//
// current yields a JSON blob with a 'version' field, next yields the plain next version string.
func NewValidator(current, next Reader, branch string, opts ...Option) *Validator {
	v := &Validator{
		current: current,
		next:    next,
		branch:  branch,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs parse, classify and branch policy checks and returns the bump kind.
//
// Both readers are invoked exactly once, before any parsing. The first error is
// returned: read errors precede parse errors, which precede bump and branch errors.
// Manifest decoding failures are reported as *versioneer.ParseError.
func (v *Validator) Validate(ctx context.Context) (versioneer.BumpKind, error) {
	if v.current == nil || v.next == nil {
		return "", errors.New("version readers are required")
	}

	blob, currentErr := v.current()
	raw, nextErr := v.next()
	if currentErr != nil {
		return "", fmt.Errorf("unable to read current version source: %w", currentErr)
	}
	if nextErr != nil {
		return "", fmt.Errorf("unable to read next version source: %w", nextErr)
	}

	manifest, err := parsers.ParseManifest(blob)
	if err != nil {
		return "", &versioneer.ParseError{Err: err}
	}
	current, err := versioneer.NewVersion(manifest.Version)
	if err != nil {
		return "", err
	}
	next, err := versioneer.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}

	log := v.logger.With(zap.String("current", current.Value()), zap.String("next", next.Value()))

	kind, err := versioneer.Classify(current, next)
	if err != nil {
		log.Debug("Bump rejected", zap.Error(err))
		return "", err
	}
	log.Debug("Bump classified", zap.Stringer("kind", kind))

	if err := CheckBranch(kind, current, v.branch); err != nil {
		log.Debug("Branch rejected", zap.String("branch", v.branch), zap.Error(err))
		return "", err
	}

	if v.tags != nil {
		tag := TagName(next.Value())
		exists, err := v.tags.TagExists(ctx, tag)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%w: %s", ErrTagExists, tag)
		}
	}

	if v.registry != nil {
		published, err := v.registry.VersionPublished(ctx, next.Value())
		if err != nil {
			return "", err
		}
		if published {
			return "", fmt.Errorf("%w: %s", ErrVersionPublished, next.Value())
		}
	}

	log.Info("Release bump validated", zap.Stringer("kind", kind), zap.String("branch", v.branch))
	return kind, nil
}
