package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZaguanLabs/deepltool"
)

const defaultKeyPrefix = "deepltool:"

// RedisCache shares translations between deepltool processes. Every call is
// bounded by the caller's context, so a slow Redis never holds an invocation
// past its deadline.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL         string        // redis:// or rediss:// URL
	TTL         int           // TTL in seconds (0 = no expiration)
	KeyPrefix   string        // Prefix for all keys (default: "deepltool:")
	DialTimeout time.Duration // Bound for the startup ping (default: 5s)
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &deepltool.CacheError{Message: "parse redis url", Cause: err}
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	c := NewRedisCacheFromClient(redis.NewClient(opts), cfg.TTL, cfg.KeyPrefix)
	if err := c.Ping(pingCtx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}

	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get looks up a translation. redis.Nil is a plain miss; any other failure,
// including a done context, is returned as *deepltool.CacheError.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, &deepltool.CacheError{Message: "redis get " + key, Cause: err}
	}

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &deepltool.CacheError{Message: "redis get " + key, Cause: err}
	}
	return val, true, nil
}

// Set stores a translation with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return &deepltool.CacheError{Message: "redis set " + key, Cause: err}
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		return &deepltool.CacheError{Message: "redis set " + key, Cause: err}
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping checks that Redis answers within ctx.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return &deepltool.CacheError{Message: "redis ping", Cause: err}
	}
	return nil
}

var _ TranslationCache = (*RedisCache)(nil)
