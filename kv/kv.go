// Package kv defines the key-value substrate the board is built on: string
// keys mapped to string values, optional expiry, no transactions and no
// secondary indexes. Everything richer (indexes, cascades, uniqueness) is
// hand-built on top of it by the store package.
package kv

import (
	"context"
	"time"
)

// Store is the minimal get/put/delete surface.
//
// Get reports absence through the second return value; a missing key is a
// normal outcome, never an error. Put with ttl <= 0 stores the value without
// expiry. Delete of a missing key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
