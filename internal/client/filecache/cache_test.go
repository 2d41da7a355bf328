package filecache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/logging"
)

type fakeDownloader struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeDownloader) Download(_ context.Context, _ models.Bucket, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func newTestCache(t *testing.T, dl Downloader) *Cache {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return New(t.TempDir(), dl, log)
}

func TestStagedFilename(t *testing.T) {
	assert.Equal(t, "b1+photo.jpg", StagedFilename("b1", "/data/user/pics/photo.jpg"))
	assert.Equal(t, "b2+rec.m4a", StagedFilename("b2", "rec.m4a"))
}

func TestStageLocalFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpegdata"), 0o600))

	c := newTestCache(t, &fakeDownloader{})

	path, err := c.StageLocalFile(context.Background(), src, "b1+photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, c.CachePath("b1+photo.jpg"), path)
	assert.True(t, c.IsCached("b1+photo.jpg"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)
}

func TestStageLocalFile_MissingSource(t *testing.T) {
	c := newTestCache(t, &fakeDownloader{})

	_, err := c.StageLocalFile(context.Background(), "/nonexistent/file.png", "b1+file.png")
	require.Error(t, err)
	assert.False(t, c.IsCached("b1+file.png"))
}

func TestFetchRemoteFile_DownloadsOnce(t *testing.T) {
	dl := &fakeDownloader{data: []byte("audio")}
	c := newTestCache(t, dl)
	ctx := context.Background()

	path, err := c.FetchRemoteFile(ctx, models.BucketAudios, "b1+rec.m4a")
	require.NoError(t, err)
	assert.Equal(t, 1, dl.calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)

	// second fetch is served from the cache, no network call
	path2, err := c.FetchRemoteFile(ctx, models.BucketAudios, "b1+rec.m4a")
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, 1, dl.calls)
}

func TestFetchRemoteFile_DownloadError(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("boom")}
	c := newTestCache(t, dl)

	_, err := c.FetchRemoteFile(context.Background(), models.BucketImages, "b1+a.png")
	require.Error(t, err)
	assert.False(t, c.IsCached("b1+a.png"))
}

func TestIsCached_FalseWhenAbsent(t *testing.T) {
	c := newTestCache(t, &fakeDownloader{})
	assert.False(t, c.IsCached("nope"))
}
