package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/pinboard/pkg/observability"
)

type instrumented struct {
	Cache
}

// Instrument reports every Get and Set on c to the registered
// observability cache hooks. The key type passed to the hooks is the key
// segment in front of its hash, e.g. "design".
func Instrument(c Cache) Cache {
	if _, ok := c.(instrumented); ok {
		return c
	}
	return instrumented{c}
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Unwrap returns the instrumented backend.
func (c instrumented) Unwrap() Cache { return c.Cache }

// KeyType returns the type segment of a key built by a Keyer, ignoring any
// scope prefix: "ci:design:ab12…" has type "design".
func KeyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
