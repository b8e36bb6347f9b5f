package menuitem

import (
	"context"

	"teapos/internal/domain"
)

type Repository interface {
	ListByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
	// Upsert matches on (category, name) and refreshes price and image.
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}
