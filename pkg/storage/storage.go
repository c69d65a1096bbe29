//go:generate mockgen -source=storage.go -destination=mock/storage.go -package=mock

// Package storage persists opaque snapshot blobs by key.
package storage

import (
	"context"
	"errors"
	"time"
)

// Common storage errors
var (
	ErrNotFound = errors.New("key not found")
)

// Store is get/set persistence over serialized blobs
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the blob stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources
	Close() error
}

// Entry is a stored blob with its write time
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
