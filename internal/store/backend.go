package store

import "context"

// Backend is a durable string-keyed byte store. Implementations must be safe
// for concurrent use.
type Backend interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error
	Close() error
}
