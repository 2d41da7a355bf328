// Package gateway holds the clients for the two remote stores: the relational
// note-row store and the attachment blob store. Both are namespaced by the
// authenticated owner, resolved per call through an OwnerProvider.
package gateway

import (
	"context"

	"github.com/raidellg/blocnotes/internal/client/models"
)

// OwnerProvider resolves the currently authenticated owner.
type OwnerProvider interface {
	CurrentOwner(ctx context.Context) (models.Owner, error)
}

// RowStore is the remote relational store holding one row per note.
type RowStore interface {
	// ListMetadata returns the lightweight listing used for diffing.
	ListMetadata(ctx context.Context, ownerID string) ([]models.RowMeta, error)

	// ListFull returns the complete rows for the given note ids.
	ListFull(ctx context.Context, ownerID string, ids []string) ([]models.Row, error)

	// UpsertRows writes the rows in one transaction, inserting or replacing
	// by note id.
	UpsertRows(ctx context.Context, rows []models.Row) error

	// Ping reports remote reachability.
	Ping(ctx context.Context) error
}

// BlobStore is the remote attachment store.
type BlobStore interface {
	// Upload pushes the cached file at cachePath under bucket/filename.
	// A missing cache file is skipped silently.
	Upload(ctx context.Context, bucket models.Bucket, filename, cachePath string) error

	// Download returns the attachment bytes. Returns common.ErrorNotFound
	// when the object does not exist.
	Download(ctx context.Context, bucket models.Bucket, filename string) ([]byte, error)
}
