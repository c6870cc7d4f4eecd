// Package storage persists opaque blobs under string keys. It stands in for
// the browser's local storage: one logical writer, synchronous access.
package storage

import "errors"

// ErrNotFound is returned by Get when there is no value under the key.
var ErrNotFound = errors.New("key not found")

// BlobStore is satisfied by every storage backend.
type BlobStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}
