package storage

import (
	"context"
	"io"
)

// BlobStore receives exported files and says where they landed.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	SignedURL(key string) (string, error)        // fs returns "file://..."
}

// ItemStore is a string key/value store in the manner of browser local
// storage. A missing key reports ok=false and no error.
type ItemStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
