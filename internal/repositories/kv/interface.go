// Package kv is the local key-value store every collection of the app is
// persisted in. Values are opaque bytes; callers store JSON documents or raw
// strings under well-known keys.
package kv

import (
	"context"
)

// UpdateFunc receives the current value of a key (nil when absent) and
// returns its replacement. Returning a nil slice deletes the key.
type UpdateFunc func(old []byte) ([]byte, error)

// Store is implemented by every storage backend.
//
// Get returns (nil, nil) for a missing key. Update runs a read-modify-write
// of a single key atomically with respect to other writers of the same store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
