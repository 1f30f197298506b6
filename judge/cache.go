package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quantonganh/codebinge"
)

const defaultCacheTTL = 10 * time.Minute

// Cache is a read-through redis cache in front of a JudgeService.
// Redis failures fall back to the wrapped service.
type Cache struct {
	next   codebinge.JudgeService
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

var _ codebinge.JudgeService = (*Cache)(nil)

func NewCache(next codebinge.JudgeService, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) LeetCodeStats(ctx context.Context, username string) (*codebinge.LeetCodeStats, error) {
	var stats codebinge.LeetCodeStats
	key := cacheKey(codebinge.PlatformLeetCode, username)
	if c.get(ctx, key, &stats) {
		return &stats, nil
	}

	fresh, err := c.next.LeetCodeStats(ctx, username)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fresh)
	return fresh, nil
}

func (c *Cache) CodeforcesStats(ctx context.Context, handle string) (*codebinge.CodeforcesStats, error) {
	var stats codebinge.CodeforcesStats
	key := cacheKey(codebinge.PlatformCodeforces, handle)
	if c.get(ctx, key, &stats) {
		return &stats, nil
	}

	fresh, err := c.next.CodeforcesStats(ctx, handle)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fresh)
	return fresh, nil
}

func (c *Cache) get(ctx context.Context, key string, out interface{}) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("judge cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("judge cache entry is corrupt")
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("judge cache write failed")
	}
}

func cacheKey(platform, username string) string {
	return fmt.Sprintf("judge:%s:%s", platform, username)
}
