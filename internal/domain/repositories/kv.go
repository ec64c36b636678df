package repositories

import (
	"context"
	"time"
)

// PutOptions carries optional per-key settings. A zero TTL means the key
// never expires. Metadata is opaque to the store and round-tripped as-is.
type PutOptions struct {
	TTL      time.Duration
	Metadata map[string]any
}

// KVStore is the networked string store every document and index record is
// persisted in. Get reports absence through the bool rather than an error so
// missing keys are distinguishable from store failures.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string, opts PutOptions) error
	Delete(ctx context.Context, key string) error
}
