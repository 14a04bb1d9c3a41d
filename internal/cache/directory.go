package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lexmarket/config"
	"lexmarket/internal/domain"
)

const directoryKey = "lawyers:directory"

// DirectoryCache holds a short-lived snapshot of the verified lawyer
// directory in Redis so search requests do not hit Postgres on every
// keystroke. Cache failures are never surfaced to callers; a broken
// cache degrades to a miss.
type DirectoryCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDirectoryCache(cfg config.RedisConfig, logger *zap.Logger) *DirectoryCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &DirectoryCache{
		rdb:    rdb,
		ttl:    cfg.DirectoryTTL,
		logger: logger,
	}
}

// NewDirectoryCacheWithClient is used by tests to back the cache with
// an existing client (miniredis).
func NewDirectoryCacheWithClient(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *DirectoryCache {
	return &DirectoryCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *DirectoryCache) Get(ctx context.Context) ([]domain.LawyerProfile, bool) {
	data, err := c.rdb.Get(ctx, directoryKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("directory cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var profiles []domain.LawyerProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		c.logger.Warn("directory cache entry is corrupt, dropping it", zap.Error(err))
		c.Invalidate(ctx)
		return nil, false
	}

	return profiles, true
}

func (c *DirectoryCache) Set(ctx context.Context, profiles []domain.LawyerProfile) {
	data, err := json.Marshal(profiles)
	if err != nil {
		c.logger.Warn("encoding directory snapshot failed", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, directoryKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("directory cache write failed", zap.Error(err))
	}
}

func (c *DirectoryCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, directoryKey).Err(); err != nil {
		c.logger.Warn("directory cache invalidation failed", zap.Error(err))
	}
}

func (c *DirectoryCache) Close() error {
	return c.rdb.Close()
}
