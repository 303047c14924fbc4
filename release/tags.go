package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v33/github"
)

var (
	ErrTagExists = errors.New("release tag already exists")
)

// TagLookup checks whether a release tag was already pushed.
type TagLookup interface {
	TagExists(ctx context.Context, tag string) (bool, error)
}

// NewGitHubTagLookup constructs GitHub backed TagLookup.
// httpClient can be used as OAuth2 or BasicAuth http transport.
func NewGitHubTagLookup(httpClient *http.Client, owner, repo string) TagLookup {
	return &GitHubTagLookup{
		Owner:        owner,
		Repo:         repo,
		githubClient: github.NewClient(httpClient),
	}
}

// GitHubTagLookup looks tags up through the git references API.
type GitHubTagLookup struct {
	Owner        string
	Repo         string
	githubClient *github.Client
}

// TagExists reports whether 'refs/tags/{tag}' exists in the configured repository.
func (l GitHubTagLookup) TagExists(ctx context.Context, tag string) (bool, error) {
	_, resp, err := l.githubClient.Git.GetRef(ctx, l.Owner, l.Repo, "tags/"+tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("unable to look up tag %q on github: %w", tag, err)
	}
	return true, nil
}

// TagName returns the git tag name for a release version.
func TagName(version string) string {
	return "v" + version
}
