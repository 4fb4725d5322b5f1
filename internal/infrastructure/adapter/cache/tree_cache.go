package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/redis/go-redis/v9"
)

// Config defines connection parameters for Redis
type Config struct {
	Addr     string
	Password string
	DB       int
	TreeTTL  time.Duration
}

// TreeCache caches rendered genealogy views in Redis. Tree building is
// a full-table scan, so dashboards hitting the same root within the TTL
// skip the rebuild entirely. A miss is never an error.
type TreeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger coreport.Logger
}

// NewTreeCache returns a TreeCache based on the provided configuration
func NewTreeCache(cfg Config, logger coreport.Logger) *TreeCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &TreeCache{
		client: client,
		ttl:    cfg.TreeTTL,
		logger: logger,
	}
}

// Ping verifies Redis connectivity
func (c *TreeCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func treeKey(mode string, rootID uint64) string {
	return fmt.Sprintf("tree:%s:%d", mode, rootID)
}

// Get retrieves a cached view into dest, reporting whether it was found.
// Redis failures degrade to a miss so the dashboard stays up without
// the cache.
func (c *TreeCache) Get(ctx context.Context, mode string, rootID uint64, dest any) bool {
	res, err := c.client.Get(ctx, treeKey(mode, rootID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Tree cache read failed", map[string]any{
				"mode":    mode,
				"root_id": rootID,
				"error":   err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal([]byte(res), dest); err != nil {
		c.logger.Warn("Tree cache entry corrupt, treating as miss", map[string]any{
			"mode":    mode,
			"root_id": rootID,
			"error":   err.Error(),
		})
		return false
	}
	return true
}

// Set caches a rendered view with the configured TTL
func (c *TreeCache) Set(ctx context.Context, mode string, rootID uint64, view any) {
	data, err := json.Marshal(view)
	if err != nil {
		c.logger.Error("Failed to marshal tree view for cache", map[string]any{
			"mode":    mode,
			"root_id": rootID,
			"error":   err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, treeKey(mode, rootID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Tree cache write failed", map[string]any{
			"mode":    mode,
			"root_id": rootID,
			"error":   err.Error(),
		})
	}
}

// Invalidate drops a user's cached views. No HTTP endpoint mutates the
// genealogy graph, so nothing in the request path calls this; enrollment
// tooling that writes users directly should call it after a graph edit,
// and stale views otherwise age out via the TTL.
func (c *TreeCache) Invalidate(ctx context.Context, rootID uint64) {
	keys := []string{treeKey("binary", rootID), treeKey("sponsor", rootID)}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Tree cache invalidation failed", map[string]any{
			"root_id": rootID,
			"error":   err.Error(),
		})
	}
}

// Close releases Redis resources
func (c *TreeCache) Close() error {
	return c.client.Close()
}
