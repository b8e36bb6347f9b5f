package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyCategories = "pos:catalog:categories"
	KeySizes      = "pos:catalog:sizes"
	KeyToppings   = "pos:catalog:toppings"
)

// KeyMenuItems is the cache key of one category's items.
func KeyMenuItems(categoryID string) string {
	return "pos:catalog:items:" + categoryID
}

// Catalog stores catalog lists as JSON values with a TTL.
type Catalog struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCatalog(client redis.Cmdable, ttl time.Duration) *Catalog {
	return &Catalog{client: client, ttl: ttl}
}

// Get decodes the value at key into dst. It reports false on a miss.
func (c *Catalog) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Catalog) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, string(data), c.ttl).Err()
}

func (c *Catalog) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
