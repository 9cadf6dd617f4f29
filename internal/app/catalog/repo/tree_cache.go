package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

const treeCacheKey = "catalog:category_tree"

// RedisTreeCache caches the category tree in Redis. Every failure is logged
// and degraded to a miss; the tree is always rebuildable from Spanner.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisTreeCache creates a RedisTreeCache.
func NewRedisTreeCache(client *redis.Client, ttl time.Duration, log *logger.Logger) contracts.TreeCache {
	return &RedisTreeCache{client: client, ttl: ttl, log: log}
}

// Get fetches the cached tree. A miss or any Redis failure returns ok=false.
func (c *RedisTreeCache) Get(ctx context.Context) ([]contracts.TreeNode, bool) {
	raw, err := c.client.Get(ctx, treeCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("category tree cache read failed")
		}
		return nil, false
	}

	var tree []contracts.TreeNode
	if err := json.Unmarshal(raw, &tree); err != nil {
		c.log.Warn().Err(err).Msg("category tree cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return tree, true
}

// Set stores the tree with the configured TTL.
func (c *RedisTreeCache) Set(ctx context.Context, tree []contracts.TreeNode) {
	raw, err := json.Marshal(tree)
	if err != nil {
		c.log.Warn().Err(err).Msg("category tree cache encode failed")
		return
	}
	if err := c.client.Set(ctx, treeCacheKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("category tree cache write failed")
	}
}

// Invalidate drops the cached tree. Called after every category write.
func (c *RedisTreeCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, treeCacheKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("category tree cache invalidate failed")
	}
}

// NopTreeCache disables caching; the read model treats every lookup as a
// miss.
type NopTreeCache struct{}

func (NopTreeCache) Get(ctx context.Context) ([]contracts.TreeNode, bool) { return nil, false }
func (NopTreeCache) Set(ctx context.Context, tree []contracts.TreeNode)   {}
func (NopTreeCache) Invalidate(ctx context.Context)                       {}
