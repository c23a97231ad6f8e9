// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mechanicbook/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the lookup cache client. It stays nil when Redis is unreachable.
var CacheClient *redis.Client

// InitCache connects the lookup cache. Lookups work without it, so a failed ping only logs.
func InitCache() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis cache unavailable, lookups will not be cached",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	CacheClient = client
	return CacheClient
}

// JSONCache stores JSON values under a key prefix with a fixed TTL. A nil client turns it into a no-op.
type JSONCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

// ErrCacheMiss is returned by Get when the key is absent or the cache is disabled.
var ErrCacheMiss = errors.New("cache miss")

func (c *JSONCache) key(k string) string { return c.Prefix + k }

// Get decodes the cached value for k into dst.
func (c *JSONCache) Get(ctx context.Context, k string, dst interface{}) error {
	if c == nil || c.Client == nil {
		return ErrCacheMiss
	}
	raw, err := c.Client.Get(ctx, c.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", c.key(k), err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("cache decode %s: %w", c.key(k), err)
	}
	return nil
}

// Set stores v under k.
func (c *JSONCache) Set(ctx context.Context, k string, v interface{}) error {
	if c == nil || c.Client == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", c.key(k), err)
	}
	if err := c.Client.Set(ctx, c.key(k), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", c.key(k), err)
	}
	return nil
}
