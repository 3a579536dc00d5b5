package question

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL  = 5 * time.Minute
	categoryCacheKey = "trivia:categories"
)

// Cache provides Redis-backed category caching to offload the store.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

var _ CategoryCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl, key: categoryCacheKey}
}

func (c *Cache) Get(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Cache) Set(ctx context.Context, categories []Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
