package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache contract used by the service layer.
// Implementations marshal values as JSON.
type Cache interface {
	// Get loads a key into dest. found=false means a miss; dest is left
	// untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores a value under a key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// Noop is a Cache that stores nothing. Used when no Redis is configured
// and in tests.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }
func (Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (Noop) Delete(ctx context.Context, keys ...string) error          { return nil }
func (Noop) DeletePattern(ctx context.Context, pattern string) error   { return nil }
func (Noop) Ping(ctx context.Context) error                            { return nil }
