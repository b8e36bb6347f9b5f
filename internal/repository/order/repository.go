package order

import (
	"context"
	"time"

	"teapos/internal/domain"
)

type ListFilter struct {
	Status domain.OrderStatus
	Limit  int
	Offset int
}

type Repository interface {
	// Create stores the order, its lines, its payment transaction and the
	// initial status log entry atomically.
	Create(ctx context.Context, o *domain.Order, changedBy string) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f ListFilter) ([]domain.Order, error)
	// UpdateStatus moves the order from `from` to `to`. It returns
	// ErrInvalidStatusTransition when the stored status is no longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, changedBy string, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, at time.Time) error
	History(ctx context.Context, id string) ([]domain.StatusLog, error)
	Summary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error)
}
