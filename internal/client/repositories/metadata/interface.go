// Package metadata is a small key/value store over the local database. The
// client keeps its persisted session token here.
package metadata

import (
	"context"
)

// Repository reads and writes opaque values by key. Get returns (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
