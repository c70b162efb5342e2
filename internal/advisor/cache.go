package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/rupeecalc/rupee-calculator/internal/domain"
)

const cacheKeyPrefix = "advice:"

// AdviceCache stores encoded advice by key. Get reports a miss as ("", false, nil);
// an error means the cache could not be read.
type AdviceCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// MemoryCache is an in-process AdviceCache with per-entry expiry.
type MemoryCache struct {
	c   *gocache.Cache
	ttl time.Duration
}

// NewMemoryCache creates a MemoryCache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{c: gocache.New(ttl, 2*ttl), ttl: ttl}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key, value string) error {
	m.c.Set(key, value, m.ttl)
	return nil
}

// Len reports the number of unexpired entries.
func (m *MemoryCache) Len() int { return m.c.ItemCount() }

// RedisCache is an AdviceCache shared across processes through Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to addr lazily; the first command dials.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Close releases the connection pool.
func (r *RedisCache) Close() error { return r.client.Close() }

// CacheKey derives the cache key for a request from its assembled prompt.
func CacheKey(req AdviceRequest) (string, error) {
	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}

// CachedClient serves repeated questions from an AdviceCache and asks the
// wrapped client otherwise. Cache failures are logged and never fail a call.
type CachedClient struct {
	next   Client
	cache  AdviceCache
	logger *slog.Logger
}

// NewCachedClient decorates next with cache. A nil logger uses slog.Default.
func NewCachedClient(next Client, cache AdviceCache, logger *slog.Logger) *CachedClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedClient{next: next, cache: cache, logger: logger}
}

func (c *CachedClient) Advise(ctx context.Context, req AdviceRequest) (domain.Advice, error) {
	key, err := CacheKey(req)
	if err != nil {
		return domain.Advice{}, err
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("advice cache read failed", "key", key, "error", err)
	}
	if ok {
		var advice domain.Advice
		if err := json.Unmarshal([]byte(raw), &advice); err == nil {
			c.logger.Debug("advice cache hit", "key", key)
			return advice, nil
		}
		c.logger.Warn("discarding undecodable cached advice", "key", key)
	}

	advice, err := c.next.Advise(ctx, req)
	if err != nil {
		return domain.Advice{}, err
	}
	encoded, err := json.Marshal(advice)
	if err != nil {
		return domain.Advice{}, fmt.Errorf("encode advice: %w", err)
	}
	if err := c.cache.Set(ctx, key, string(encoded)); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("advice cache write failed", "key", key, "error", err)
	}
	return advice, nil
}
