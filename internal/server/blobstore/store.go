// Package blobstore keeps file contents in object storage, addressed by
// opaque keys that the metadata store references.
package blobstore

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned when no object exists under the key.
var ErrBlobNotFound = errors.New("blob not found")

// Store is the blob side of the drive. Keys are chosen by the caller and
// never reused.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object. Implementations may report a missing key
	// as ErrBlobNotFound; callers treat that as already deleted.
	Delete(ctx context.Context, key string) error
	// List returns every key starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
