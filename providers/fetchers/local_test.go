package fetchers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFetcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".versions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".versions", "next.txt"), []byte("1.2.0\n"), 0o644))

	fetcher := NewLocalFetcher(root)

	b, err := fetcher.FileContent(context.Background(), ".versions/next.txt")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0\n", string(b))

	b, err = fetcher.FileContent(context.Background(), filepath.Join(root, ".versions", "next.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0\n", string(b))
}

func TestLocalFetcher_Errors(t *testing.T) {
	root := t.TempDir()
	fetcher := NewLocalFetcher(root)

	_, err := fetcher.FileContent(context.Background(), "package.json")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = fetcher.FileContent(context.Background(), ".")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFileNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetcher.FileContent(ctx, "package.json")
	assert.ErrorIs(t, err, context.Canceled)
}
