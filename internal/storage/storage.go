package storage

import (
	"context"
	"errors"
)

// Snapshots is the durable key-value backend for serialized cart snapshots.
// Consumers define this interface, not the Redis implementation.
type Snapshots interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("snapshot not found")
