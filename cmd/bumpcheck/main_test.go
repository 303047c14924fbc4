package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dephub/dephub-release/providers/versioneer"
	"github.com/dephub/dephub-release/release"
)

func writeTree(t *testing.T, current, next string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".versions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name": "vscode-confluent", "version": "`+current+`"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".versions", "next.txt"), []byte(next+"\n"), 0o644))
	return root
}

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestRunCheck(t *testing.T) {
	root := writeTree(t, "1.1.0-4", "1.2.0")
	var out bytes.Buffer

	err := runCheck(context.Background(), &Config{Root: root}, "main", env(nil), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "minor\n", out.String())
}

func TestRunCheck_BranchFromEnv(t *testing.T) {
	root := writeTree(t, "1.0.0", "1.0.1")
	var out bytes.Buffer

	err := runCheck(context.Background(), &Config{Root: root}, "", env(map[string]string{"GITHUB_REF_NAME": "v1.0.x"}), &out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "patch\n", out.String())
}

func TestRunCheck_Errors(t *testing.T) {
	t.Run("invalid branch", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.0.1")
		var out bytes.Buffer

		err := runCheck(context.Background(), &Config{Root: root}, "feature/xyz", env(nil), &out, zap.NewNop())
		var berr *release.BranchError
		assert.True(t, errors.As(err, &berr), "expected BranchError, got %v", err)
		assert.Empty(t, out.String())
	})

	t.Run("invalid bump", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.2.3")

		err := runCheck(context.Background(), &Config{Root: root}, "main", env(nil), &bytes.Buffer{}, zap.NewNop())
		var berr *versioneer.BumpError
		assert.True(t, errors.As(err, &berr), "expected BumpError, got %v", err)
	})

	t.Run("no branch", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.0.1")

		err := runCheck(context.Background(), &Config{Root: root}, "", env(nil), &bytes.Buffer{}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("tag check without repo", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.1.0")

		err := runCheck(context.Background(), &Config{Root: root, CheckTag: true}, "main", env(nil), &bytes.Buffer{}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("registry check without publisher", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.1.0")

		err := runCheck(context.Background(), &Config{Root: root, CheckRegistry: true}, "main", env(nil), &bytes.Buffer{}, zap.NewNop())
		assert.ErrorContains(t, err, "publisher and name are required")
	})

	t.Run("unsupported repo", func(t *testing.T) {
		root := writeTree(t, "1.0.0", "1.1.0")

		err := runCheck(context.Background(), &Config{Root: root, Repo: "https://gitlab.com/a/b.git"}, "main", env(nil), &bytes.Buffer{}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bumpcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
manifest: extension/package.json
next_file: NEXT
repo: confluentinc/vscode
ref: main
check_tag: true
`), 0o644))

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, &Config{Manifest: "extension/package.json", NextFile: "NEXT", Repo: "confluentinc/vscode", Ref: "main", CheckTag: true}, cfg)

	cfg, err = loadConfig(filepath.Join(dir, "missing.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)

	_, err = loadConfig(filepath.Join(dir, "missing.yaml"), true)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("manifest: [broken"), 0o644))
	_, err = loadConfig(path, true)
	assert.Error(t, err)
}

func TestBranchFromEnv(t *testing.T) {
	assert.Equal(t, "v1.0.x", branchFromEnv(env(map[string]string{"SEMAPHORE_GIT_BRANCH": "v1.0.x", "GITHUB_REF_NAME": "main"})))
	assert.Equal(t, "main", branchFromEnv(env(map[string]string{"GITHUB_REF_NAME": "main"})))
	assert.Equal(t, "", branchFromEnv(env(nil)))
}

func TestGitHubHTTPClient(t *testing.T) {
	assert.Nil(t, githubHTTPClient(""))

	cl := githubHTTPClient("secret")
	require.NotNil(t, cl)
	tr, ok := cl.Transport.(*bearerTransport)
	require.True(t, ok)
	assert.Equal(t, "secret", tr.token)
}

func TestApplyFlags(t *testing.T) {
	require.NoError(t, rootCmd.Flags().Parse([]string{"--manifest", "ext/package.json", "--check-tag", "--ref", "main"}))

	cfg := &Config{Manifest: "package.json", NextFile: "NEXT", Ref: "release"}
	applyFlags(rootCmd, cfg)

	assert.Equal(t, &Config{Manifest: "ext/package.json", NextFile: "NEXT", Ref: "main", CheckTag: true}, cfg)
}
