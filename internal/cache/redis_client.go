package cache

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ArticleListKey caches the first page of the article listing. Invalidated on
// article create/delete and on article like toggles.
const ArticleListKey = "articles:list"

const defaultTTL = 30 * time.Second

// RedisClient is a best-effort response cache. A client constructed without a
// host is disabled: reads miss and writes are dropped, so the service runs
// fine without Redis.
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewRedisClient(host string, port string, log *zap.Logger) *RedisClient {
	this := &RedisClient{
		log: log,
		ttl: defaultTTL,
	}
	if host == "" {
		return this
	}
	this.client = redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(host, port),
	})
	return this
}

func (c *RedisClient) Get(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

func (c *RedisClient) Set(ctx context.Context, key string, value string) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisClient) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *RedisClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
