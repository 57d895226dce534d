// Package cache stores fetched repository data between runs.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for a shared deployment of the serve command, and [NullCache] when
// caching is disabled. [Open] picks one from a URL:
//
//	c, err := cache.Open("redis://localhost:6379/0")
//	c, err := cache.Open("file:///var/cache/updatecenter")
//	c, err := cache.Open("")  // NullCache
//
// Keys are built with a [Keyer] so that every backend shares one layout.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A TTL of zero means the entry does not expire.
type Cache interface {
	// Get returns the value for key. ok is false on a miss or expiry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Open creates a cache from a URL. Supported schemes are file:// (a
// directory), redis:// and rediss://. An empty URL or "none" yields a
// NullCache. A bare path is treated as a directory.
func Open(url string) (Cache, error) {
	switch {
	case url == "" || url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisCache(url)
	case strings.HasPrefix(url, "file://"):
		return NewFileCache(strings.TrimPrefix(url, "file://"))
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("unsupported cache url %q", url)
	}
	return NewFileCache(url)
}
