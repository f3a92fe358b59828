package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stairforecast/backend/internal/logger"
)

// Cache keeps rendered staircase responses keyed by query hash. Every key
// carries the shared prefix so Invalidate can sweep the whole namespace
// after any write.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	Invalidate(ctx context.Context)
	Close() error
}

type cache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

// NewCache connects to REDIS_ADDR and fails fast on an unreachable server.
// Callers treat a construction error as "run without cache".
func NewCache(log *logger.Logger) (Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_CACHE_PREFIX"))
	if prefix == "" {
		prefix = "staircase"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &cache{
		log:    log.With("service", "RedisCache"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (c *cache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache read failed", "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *cache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key(key), payload, ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "error", err)
	}
}

// Invalidate drops every cached staircase. Writes are rare relative to
// reads, so a namespace sweep beats tracking per-query dependencies.
func (c *cache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.prefix+":*", 200).Result()
		if err != nil {
			c.log.Warn("Cache invalidation scan failed", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.log.Warn("Cache invalidation delete failed", "error", err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}

func (c *cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
