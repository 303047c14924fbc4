package release

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/dephub/dephub-release/providers/fetchers"
	"github.com/dephub/dephub-release/providers/parsers"
)

// gitRepoRgx is used to parse repository info from GIT-compatible address string.
//
// Examples matching the regexp:
//
//	'git@myhostname:vendor/reponame.git'
//	'https://myhostname/vendor/reponame' and so on...
//
// Groups:
//
//	2: hostname (e.g. 'github.com')
//	3: vendor (e.g. 'confluentinc')
//	4: repo name (e.g. 'vscode')
var gitRepoRgx string = `^(https?://|git@|ssh://git@)([\w.\-]+)[:/]([\w.\-]+)/([\w.\-]+?)(\.git)?/?$`

// shortRepoRgx matches the '{owner}/{repo}' notation.
var shortRepoRgx string = `^([\w.\-]+)/([\w.\-]+)$`

var (
	gitRepoRgxCompiled   *regexp.Regexp
	shortRepoRgxCompiled *regexp.Regexp
)

func init() {
	gitRepoRgxCompiled = regexp.MustCompile(gitRepoRgx)
	shortRepoRgxCompiled = regexp.MustCompile(shortRepoRgx)
}

// supGitSrcs - supported git sources.
var supGitSrcs = []string{"github.com"}

// Repo represents basic repository information.
type Repo struct {
	Host, Owner, Name string
}

// Source reads the manifest and next version files from one location.
type Source struct {
	manifest *parsers.ManifestParser
	next     *parsers.NextVersionParser
}

// NewSource constructs a Source over any fetcher.
// Empty paths fall back to 'package.json' and '.versions/next.txt'.
func NewSource(fetcher fetchers.FileFetcher, manifestPath, nextPath string) *Source {
	return &Source{
		manifest: parsers.NewManifestParser(fetcher, manifestPath),
		next:     parsers.NewNextVersionParser(fetcher, nextPath),
	}
}

// NewMemorySource constructs a Source over in-memory files using default paths.
func NewMemorySource(files map[string][]byte) *Source {
	return NewSource(fetchers.ByteMapFetcher{Files: files}, "", "")
}

// NewLocalSource constructs a Source reading from the working tree at root.
func NewLocalSource(root, manifestPath, nextPath string) *Source {
	return NewSource(fetchers.NewLocalFetcher(root), manifestPath, nextPath)
}

// NewGitSource constructs a Source reading from a remote repository at ref.
//
// Ref can both refer to commit hash/branch/tag.
//
// You can pass specific signed httpClient with any information you want the requests go with
// for example you would like to pass OAuth2/BasicAuth information to github API for increased
// rate limits and so on.
//
// repoAddr is your repository address (e.g. 'git@github.com:vendor/reponame.git' or 'vendor/reponame')
func NewGitSource(httpClient *http.Client, repoAddr, ref, manifestPath, nextPath string) (*Source, error) {
	repo, err := ParseRepo(repoAddr)
	if err != nil {
		return nil, err
	}
	fetcher := fetchers.NewGitHubFetcher(httpClient, repo.Owner, repo.Name, ref)
	return NewSource(fetcher, manifestPath, nextPath), nil
}

// CurrentReader returns a Reader yielding the raw manifest blob.
func (s *Source) CurrentReader(ctx context.Context) Reader {
	return func() (string, error) {
		return s.manifest.Raw(ctx)
	}
}

// NextReader returns a Reader yielding the trimmed next version string.
func (s *Source) NextReader(ctx context.Context) Reader {
	return func() (string, error) {
		return s.next.Version(ctx)
	}
}

// ParseRepo parses repository information from an address string.
func ParseRepo(addr string) (*Repo, error) {
	if m := shortRepoRgxCompiled.FindStringSubmatch(addr); m != nil {
		return &Repo{Host: supGitSrcs[0], Owner: m[1], Name: m[2]}, nil
	}

	matches := gitRepoRgxCompiled.FindStringSubmatch(addr)
	if matches == nil || matches[2] == "" || matches[3] == "" || matches[4] == "" {
		return nil, fmt.Errorf("unsupported git repository format %q", addr)
	}

	if !gitHostSupported(matches[2]) {
		return nil, fmt.Errorf("git source %q is not supported", matches[2])
	}

	return &Repo{Host: matches[2], Owner: matches[3], Name: strings.TrimSuffix(matches[4], ".git")}, nil
}

// gitHostSupported - helper to check git source support status
func gitHostSupported(host string) bool {
	for _, v := range supGitSrcs {
		if v == host {
			return true
		}
	}
	return false
}
