package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemory returns an in-process cache. cleanupInterval controls how often expired
// entries are purged.
func NewMemory(defaultTTL, cleanupInterval time.Duration) Cache {
	return &memoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	payload, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected cache value type %T for key %s", raw, key)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	c.store.Set(key, payload, ttl)
	return nil
}

func (c *memoryCache) Close() error {
	c.store.Flush()
	return nil
}
