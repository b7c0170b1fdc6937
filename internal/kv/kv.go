// Package kv defines the key-value persistence port the planner stores
// its blobs behind, plus an in-memory implementation.
package kv

import "context"

// Store is the persistence contract: JSON blobs keyed by arbitrary
// strings, full replacement on every write.
type Store interface {
	// Get returns the blob stored at key. The second result is false
	// when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value at key, overwriting any prior value.
	Set(ctx context.Context, key string, value []byte) error
}
