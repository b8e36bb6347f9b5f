package category

import (
	"context"

	"teapos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	// Upsert creates the category or returns the existing one with that name.
	Upsert(ctx context.Context, name string) (*domain.Category, error)
}
