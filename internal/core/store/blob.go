// Package store provides the key-value blob persistence interface
// following Clean Architecture principles with zero external dependencies.
package store

import "context"

// Blob is the opaque key-value store backing workflow persistence
// (DIP - core depends on this interface, adapters implement it).
// PRINCIPLES:
// - ISP: Four methods, persistence only
// - SRP: Bytes in, bytes out; serialization lives with the caller
type Blob interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
