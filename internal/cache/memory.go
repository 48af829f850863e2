package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is a process-local cache backed by ttlcache.
type Memory struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemory starts a cache whose entries expire after defaultTTL unless a
// TTL is given to Set.
func NewMemory(defaultTTL time.Duration) *Memory {
	items := ttlcache.New(
		ttlcache.WithTTL[string, []byte](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &Memory{items: items}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	item := m.items.Get(key)
	if item == nil {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	m.items.Set(key, b, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.items.Delete(key)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close stops the expiry loop.
func (m *Memory) Close() error {
	m.items.Stop()
	return nil
}
