package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dephub/dephub-release/providers/api/openvsx"
)

var (
	ErrVersionPublished = errors.New("version already published")
)

// RegistryLookup checks whether an extension version was already published.
type RegistryLookup interface {
	VersionPublished(ctx context.Context, version string) (bool, error)
}

// NewOpenVSXLookup constructs Open VSX backed RegistryLookup for the 'publisher.name' extension.
func NewOpenVSXLookup(httpClient *http.Client, publisher, name string) (RegistryLookup, error) {
	if publisher == "" || name == "" {
		return nil, fmt.Errorf("extension publisher and name are required")
	}
	api, err := openvsx.NewClient(httpClient, nil)
	if err != nil {
		return nil, err
	}
	return &OpenVSXLookup{api: api, publisher: publisher, name: name}, nil
}

// OpenVSXLookup represents Open VSX registry lookup.
type OpenVSXLookup struct {
	api       *openvsx.Client
	publisher string
	name      string
}

// VersionPublished reports whether the registry knows the exact extension version.
//
// The extension metadata 'allVersions' listing is checked first, an unknown extension
// has no published versions. Versions missing from the listing are confirmed with a
// version query, the listing may only carry aliases for pre-release channels.
func (l OpenVSXLookup) VersionPublished(ctx context.Context, version string) (bool, error) {
	ext, r, err := l.api.Extension(ctx, l.publisher, l.name)
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("unable to get %s.%s from open vsx: %w", l.publisher, l.name, err)
	}
	if ext.Version == version {
		return true, nil
	}
	for _, v := range ext.AllVersions {
		if v.Version == version {
			return true, nil
		}
	}

	res, _, err := l.api.Query(ctx, &openvsx.QueryOptions{
		NamespaceName:    l.publisher,
		ExtensionName:    l.name,
		ExtensionVersion: version,
	})
	if err != nil {
		return false, fmt.Errorf("unable to query %s.%s on open vsx: %w", l.publisher, l.name, err)
	}
	for _, e := range res.Extensions {
		if e.Version == version {
			return true, nil
		}
	}
	return false, nil
}
