/*
Package fetchers provides file fetching functions for local and remote repositories.

Usage:

	fetcher := fetchers.NewGitHubFetcher(httpClient, "owner", "repo", "main")
	b, err := fetcher.FileContent(ctx, "package.json")
*/
package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v33/github"
)

var (
	ErrFileNotFound = errors.New("release file not found")
	ErrNotAFile     = errors.New("parameter is a directory or not a valid file")
)

// FileFetcher interface defines fetchers methods.
type FileFetcher interface {
	FileContent(ctx context.Context, path string) ([]byte, error)
}

// ByteMapFetcher is used for storing file contents in memory (usefull for debugging/testing or for building custom repositories logic)
type ByteMapFetcher struct {
	Files map[string][]byte
}

// FileContent retrieves (if found) []byte contents from it's map using path argument as a key.
func (sf ByteMapFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	v, ok := sf.Files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	return v, nil
}

// GitHubFetcher fetches files from the specified repository.
// Owner and Repo represent '{owner}/{repo}' notation.
type GitHubFetcher struct {
	Owner        string
	Repo         string
	Ref          string
	githubClient *github.Client
}

// NewGitHubFetcher constructs GitHubFetcher with specified parameters.
// httpClient can be used as OAuth2 or BasicAuth http transport.
// Ref can be a branch, a tag or a commit SHA, empty ref means the default branch.
func NewGitHubFetcher(httpClient *http.Client, owner, repo, ref string) FileFetcher {
	return &GitHubFetcher{
		Owner:        owner,
		Repo:         repo,
		Ref:          ref,
		githubClient: github.NewClient(httpClient),
	}
}

// FileContent fetches specified file content from the configured repository.
// Path argument is the root-related file path.
func (p GitHubFetcher) FileContent(ctx context.Context, path string) ([]byte, error) {
	opts := github.RepositoryContentGetOptions{
		Ref: p.Ref,
	}

	rc, dc, resp, err := p.githubClient.Repositories.GetContents(ctx, p.Owner, p.Repo, path, &opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("unable to load '%s' file from github: %w", path, err)
	}

	if len(dc) != 0 || rc == nil {
		return nil, ErrNotAFile
	}

	c, err := rc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("unable to decode '%s' file content: %w", path, err)
	}

	return []byte(c), nil
}
