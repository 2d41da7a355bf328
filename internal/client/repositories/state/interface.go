// Package state persists the client's local state blobs (the serialized note
// document and the session) in a small sqlite key/value table.
package state

import "context"

// Well-known state keys.
const (
	NotesKey   = "notes"
	SessionKey = "session"
)

// Repository is a persistent key/value store for opaque state blobs.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
