package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load when a key has no value, including when
// its TTL has expired.
var ErrNotFound = errors.New("storage: key not found")

// Repository is a namespaced key/value store. A namespace isolates one
// user's data (a CLI profile or a chat); keys inside it are the fixed
// nsn_* names. Values are opaque bytes, callers own the encoding.
type Repository interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, ns, key string) ([]byte, error)

	// Save stores val under key. A positive ttl makes the entry expire,
	// which is how session-scoped values are kept.
	Save(ctx context.Context, ns, key string, val []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, ns, key string) error

	// Keys lists the keys present in a namespace, sorted.
	Keys(ctx context.Context, ns string) ([]string, error)

	// Close releases the underlying database.
	Close() error
}
