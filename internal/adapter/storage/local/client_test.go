package local

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c, err := NewClient(t.TempDir(), "http://localhost:8000", logger)
	require.NoError(t, err)
	return c
}

func TestUploadFile_WritesFileAndReturnsURL(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	url, err := c.UploadFile(ctx, "photo.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/uploads/photo.png", url)

	data, err := os.ReadFile(filepath.Join(c.dir, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUploadFile_StripsPathTraversal(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	url, err := c.UploadFile(ctx, "../../etc/evil.png", strings.NewReader("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/uploads/evil.png", url)

	_, err = os.Stat(filepath.Join(c.dir, "evil.png"))
	require.NoError(t, err)
}

func TestDeleteFile_RemovesExactlyThatFile(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.UploadFile(ctx, "keep.png", strings.NewReader("a"), "image/png")
	require.NoError(t, err)
	_, err = c.UploadFile(ctx, "drop.png", strings.NewReader("b"), "image/png")
	require.NoError(t, err)

	require.NoError(t, c.DeleteFile(ctx, "drop.png"))

	exists, err := c.FileExists(ctx, "drop.png")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = c.FileExists(ctx, "keep.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteFile_MissingFileFails(t *testing.T) {
	c := newTestClient(t)

	err := c.DeleteFile(context.Background(), "absent.png")
	require.Error(t, err)
}

func TestFileExists_MissingFile(t *testing.T) {
	c := newTestClient(t)

	exists, err := c.FileExists(context.Background(), "nothing.png")
	require.NoError(t, err)
	assert.False(t, exists)
}
