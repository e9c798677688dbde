// Package metadata is the local key/value table backing the persisted
// session record.
package metadata

import (
	"context"
)

// Repository reads and writes raw values keyed by name.
//
// Missing keys are not errors: Get returns (nil, nil) and GetMany simply
// omits them.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
