// Package store defines the hierarchical key-value store consumed by the
// graph engine. Paths are "/"-joined segment strings; values are opaque
// byte blobs. Implementations must provide snapshot-isolated reads and
// atomic batch commits.
package store

import "context"

// Store is a hierarchical path -> blob mapping.
type Store interface {
	// Get returns the value at path, or nil if the path holds no value.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a value is present at path.
	Exists(ctx context.Context, path string) (bool, error)

	// List returns the immediate child segments beneath prefix, sorted
	// lexicographically. A prefix with no children yields a nil slice.
	List(ctx context.Context, prefix string) ([]string, error)

	// NewBatch starts an empty write batch. Batches from one Store must
	// not be committed against another.
	NewBatch() Batch

	Close() error
}

// Batch accumulates writes for a single atomic commit.
type Batch interface {
	Put(path string, value []byte)
	Len() int

	// Commit applies every buffered write atomically. The batch must not
	// be reused afterwards.
	Commit(ctx context.Context) error
}
