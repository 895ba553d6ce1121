// Package cache stores the last successfully fetched collections in Redis so
// the listing can come up with slightly stale data when the backend is down
// at startup.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "listing:snapshot:"

// Snapshots reads and writes collection snapshots keyed by collection name.
type Snapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a snapshot store with the given TTL per entry.
func New(rdb *redis.Client, ttl time.Duration) *Snapshots {
	return &Snapshots{rdb: rdb, ttl: ttl}
}

// Store serializes items and overwrites the snapshot for name.
func Store[T any](ctx context.Context, s *Snapshots, name string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", name, err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+name, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store %s snapshot: %w", name, err)
	}
	return nil
}

// Load returns the snapshot for name. A missing key is an error: callers use
// Load only as a fallback and treat any failure as "no snapshot".
func Load[T any](ctx context.Context, s *Snapshots, name string) ([]T, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+name).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", name, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("unmarshal %s snapshot: %w", name, err)
	}
	return items, nil
}
