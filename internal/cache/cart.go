package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teapos/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultCartTTL bounds how long an abandoned register cart survives.
const DefaultCartTTL = 24 * time.Hour

// CartStore keeps cart snapshots in Redis. It satisfies cart.Store.
type CartStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCartStore(client redis.Cmdable, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &CartStore{client: client, ttl: ttl}
}

func (s *CartStore) Save(ctx context.Context, key string, lines []domain.LineItem) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, string(data), s.ttl).Err()
}

// Load returns nil lines when the key does not exist.
func (s *CartStore) Load(ctx context.Context, key string) ([]domain.LineItem, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []domain.LineItem
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: cart snapshot %s: %v", domain.ErrData, key, err)
	}
	return lines, nil
}

func (s *CartStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
