package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
)

const aggregateSnapshotKey = "backoffice:aggregate_ledger"

// RedisAggregateCache stores the aggregate-ledger snapshot in redis.
type RedisAggregateCache struct {
	client *redis.Client
}

func NewRedisAggregateCache(addr string, password string, db int) *RedisAggregateCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisAggregateCache{client: client}
}

func (c *RedisAggregateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisAggregateCache) Close() error {
	return c.client.Close()
}

func (c *RedisAggregateCache) Get(ctx context.Context) (*domain.AggregateLedger, bool, error) {
	val, err := c.client.Get(ctx, aggregateSnapshotKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snapshot domain.AggregateLedger
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, false, err
	}
	return &snapshot, true, nil
}

func (c *RedisAggregateCache) Set(ctx context.Context, snapshot *domain.AggregateLedger, ttl time.Duration) error {
	if snapshot == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, aggregateSnapshotKey, payload, ttl).Err()
}

func (c *RedisAggregateCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, aggregateSnapshotKey).Err()
}
