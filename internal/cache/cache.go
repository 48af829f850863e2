// Package cache stores JSON-encoded values under string keys with a TTL.
// Lookups that fail are reported to the caller, who treats the cache as
// advisory.
package cache

import (
	"context"
	"time"
)

// Cache is implemented by Memory, Redis and Noop.
type Cache interface {
	// Get decodes the value stored under key into dest. found is false on a
	// miss, in which case dest is left untouched.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
func (Noop) Close() error { return nil }
