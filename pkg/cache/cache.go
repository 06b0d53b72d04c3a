// Package cache provides a keyed store with per-entry TTL and several backing drivers.
// Values are stored as JSON so every driver round-trips the same way.
package cache

import (
	"context"
	"time"
)

const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Cache is a keyed store with TTL. Get reports whether a live entry was found
// and decodes it into dest.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Close() error
}

type noopCache struct{}

// NewNoop returns a cache that never stores anything.
func NewNoop() Cache { return noopCache{} }

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Close() error { return nil }
