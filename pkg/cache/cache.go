// Package cache stores solved designs and rendered artifacts between runs.
//
// All backends implement [Cache], a byte-oriented key/value store with
// optional TTLs. Callers serialize their own values; keys come from a
// [Keyer] so the CLI, the batch generator and the HTTP server agree on
// where a design lives.
//
// Backends:
//
//   - [FileCache]: one JSON file per key under a directory, for the CLI
//   - [RedisCache]: shared cache for the server and parallel generators
//   - [NullCache]: never stores anything, used when caching is disabled
//
// Wrap any backend with [Instrument] to report hits, misses and writes
// through [observability.Cache].
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized values.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers usually treat them as a miss and carry on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// TTLs per value type. Solutions are deterministic for their key, so they
// only expire to bound disk and memory use.
const (
	TTLDesign  = 30 * 24 * time.Hour
	TTLNetlist = 30 * 24 * time.Hour
)
