// Package redis caches configured station capacity limits.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const capacityKeyPrefix = "station:capacity:"

// CapacityCache implements ports.CapacityCache on a Redis string per station.
// Entries expire after ttl so a missed invalidation heals on its own.
type CapacityCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCapacityCache(client *goredis.Client, ttl time.Duration) *CapacityCache {
	return &CapacityCache{client: client, ttl: ttl}
}

func (c *CapacityCache) Get(ctx context.Context, station string) (int, bool, error) {
	v, err := c.client.Get(ctx, capacityKeyPrefix+station).Int()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (c *CapacityCache) Set(ctx context.Context, station string, maxUnitsPerDay int) error {
	return c.client.Set(ctx, capacityKeyPrefix+station, maxUnitsPerDay, c.ttl).Err()
}

func (c *CapacityCache) Invalidate(ctx context.Context, station string) error {
	return c.client.Del(ctx, capacityKeyPrefix+station).Err()
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
