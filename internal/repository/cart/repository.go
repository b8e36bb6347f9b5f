package cart

import (
	"context"
	"time"

	"teapos/internal/domain"
)

// Repository stores register cart snapshots in Postgres. It satisfies
// cart.Store for deployments without Redis.
type Repository interface {
	Save(ctx context.Context, key string, lines []domain.LineItem) error
	// Load returns nil lines when nothing is stored under key.
	Load(ctx context.Context, key string) ([]domain.LineItem, error)
	Delete(ctx context.Context, key string) error
	// Purge drops snapshots untouched since before.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
