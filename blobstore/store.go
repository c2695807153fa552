package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore stores named blobs.
type BlobStore interface {
	// Put writes a blob atomically, replacing any existing content.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a blob in full.
	Get(ctx context.Context, name string) ([]byte, error)
}
