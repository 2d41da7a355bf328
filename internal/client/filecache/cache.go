// Package filecache maintains the local attachment cache. Every attachment a
// note references lives under <root>/files/<filename>, where filename is the
// stable cache/sync key "<blockID>+<original basename>". Cached files are
// immutable: once a filename exists on disk it is never re-fetched.
package filecache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/filex"
	"github.com/raidellg/blocnotes/internal/logging"
)

// Downloader pulls attachment bytes from remote storage.
type Downloader interface {
	Download(ctx context.Context, bucket models.Bucket, filename string) ([]byte, error)
}

type Cache struct {
	root  string
	blobs Downloader
	log   logging.Logger
}

func New(root string, blobs Downloader, log logging.Logger) *Cache {
	return &Cache{root: root, blobs: blobs, log: log}
}

// StagedFilename derives the cache key for an attachment block from its block
// id and the device-local source uri.
func StagedFilename(blockID, uri string) string {
	return blockID + "+" + filepath.Base(uri)
}

// CachePath returns the deterministic on-disk location for a cache key.
func (c *Cache) CachePath(filename string) string {
	return filepath.Join(c.root, "files", filename)
}

// IsCached reports whether the file is present in the cache. Stat errors are
// treated as not cached so callers fall through to a fetch.
func (c *Cache) IsCached(filename string) bool {
	return filex.Exists(c.CachePath(filename))
}

// StageLocalFile copies a device-local file into the cache under filename and
// returns the cache path. Staging an already-cached filename overwrites it.
func (c *Cache) StageLocalFile(ctx context.Context, srcURI, filename string) (string, error) {
	dst := c.CachePath(filename)
	if err := filex.CopyFile(srcURI, dst); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", filename, err)
	}
	c.log.Debug(ctx, "staged local file", "filename", filename)
	return dst, nil
}

// FetchRemoteFile ensures filename is present in the cache, downloading it
// from remote storage if needed, and returns the cache path. A cached file is
// returned without touching the network.
func (c *Cache) FetchRemoteFile(ctx context.Context, bucket models.Bucket, filename string) (string, error) {
	dst := c.CachePath(filename)
	if filex.Exists(dst) {
		return dst, nil
	}

	data, err := c.blobs.Download(ctx, bucket, filename)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", filename, err)
	}

	if _, err := filex.EnsureDir(filepath.Dir(dst)); err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", filename, err)
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", filename, err)
	}

	c.log.Debug(ctx, "fetched remote file", "bucket", string(bucket), "filename", filename)
	return dst, nil
}
