package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dayplanner/core/internal/domain/entities"
	"github.com/dayplanner/core/internal/infrastructure/config"
	"github.com/dayplanner/core/internal/infrastructure/logger"
	"github.com/dayplanner/core/internal/ports"
)

// RedisViewCache caches month views in Redis. Any backend failure is
// logged and treated as a miss; the cache never fails a request.
type RedisViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisViewCache connects to Redis and returns the view cache.
func NewRedisViewCache(cfg config.RedisConfig, log *logger.Logger) (*RedisViewCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisViewCache{
		client: client,
		ttl:    cfg.ViewTTL,
		logger: log.WithComponent("view_cache"),
	}, nil
}

func monthKey(userID string, year, month int) string {
	return fmt.Sprintf("dayplanner:month:%s:%04d-%02d", userID, year, month)
}

func (c *RedisViewCache) GetMonthEvents(ctx context.Context, userID string, year, month int) ([]*entities.Event, bool) {
	data, err := c.client.Get(ctx, monthKey(userID, year, month)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("Cache read failed", "error", err, "user_id", userID)
		}
		return nil, false
	}

	var events []*entities.Event
	if err := json.Unmarshal(data, &events); err != nil {
		c.logger.Warnw("Cache entry corrupt, dropping", "error", err, "user_id", userID)
		c.client.Del(ctx, monthKey(userID, year, month))
		return nil, false
	}

	return events, true
}

func (c *RedisViewCache) SetMonthEvents(ctx context.Context, userID string, year, month int, events []*entities.Event) {
	data, err := json.Marshal(events)
	if err != nil {
		c.logger.Warnw("Cache encode failed", "error", err, "user_id", userID)
		return
	}

	if err := c.client.Set(ctx, monthKey(userID, year, month), data, c.ttl).Err(); err != nil {
		c.logger.Warnw("Cache write failed", "error", err, "user_id", userID)
	}
}

// InvalidateUser drops every cached month view for a user. Called after
// each mutation so the next read reflects the change.
func (c *RedisViewCache) InvalidateUser(ctx context.Context, userID string) {
	pattern := fmt.Sprintf("dayplanner:month:%s:*", userID)

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		c.logger.Warnw("Cache invalidation scan failed", "error", err, "user_id", userID)
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("Cache invalidation failed", "error", err, "user_id", userID)
	}
}

// Close releases the Redis connection.
func (c *RedisViewCache) Close() error {
	return c.client.Close()
}

// NoopViewCache satisfies the ViewCache port when Redis is disabled.
type NoopViewCache struct{}

// NewNoopViewCache returns a cache that never hits.
func NewNoopViewCache() ports.ViewCache {
	return &NoopViewCache{}
}

func (NoopViewCache) GetMonthEvents(context.Context, string, int, int) ([]*entities.Event, bool) {
	return nil, false
}

func (NoopViewCache) SetMonthEvents(context.Context, string, int, int, []*entities.Event) {}

func (NoopViewCache) InvalidateUser(context.Context, string) {}
