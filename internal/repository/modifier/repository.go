package modifier

import (
	"context"

	"teapos/internal/domain"
)

// Repository stores size and topping options. Both share one shape and
// live in separate tables.
type Repository interface {
	ListSizes(ctx context.Context) ([]domain.SizeOption, error)
	CreateSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error)
	UpdateSize(ctx context.Context, s domain.SizeOption) (*domain.SizeOption, error)
	DeleteSize(ctx context.Context, id string) error
	UpsertSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error)

	ListToppings(ctx context.Context) ([]domain.ToppingOption, error)
	CreateTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error)
	UpdateTopping(ctx context.Context, t domain.ToppingOption) (*domain.ToppingOption, error)
	DeleteTopping(ctx context.Context, id string) error
	UpsertTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error)
}
