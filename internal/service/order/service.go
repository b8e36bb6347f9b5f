package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"teapos/internal/domain"
	"teapos/internal/events"
	"teapos/internal/logging"
	orderrepo "teapos/internal/repository/order"

	"github.com/sirupsen/logrus"
)

// RegisterActor is recorded as the author of the initial status entry.
const RegisterActor = "register"

const maxPageSize = 200

type Service struct {
	repo      orderRepo
	publisher events.Publisher
	now       func() time.Time
	logger    *logrus.Entry
}

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order, changedBy string) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, changedBy string, at time.Time) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, at time.Time) error
	History(ctx context.Context, id string) ([]domain.StatusLog, error)
	Summary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error)
}

func New(repo orderRepo, publisher events.Publisher, logger *logrus.Entry) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		logger:    logging.OrDiscard(logger).WithField("component", "orders"),
	}
}

type Filter struct {
	Status domain.OrderStatus
	Limit  int
	Offset int
}

// SubmitOrder stores a new order. A failed event publish is logged and does
// not fail the submission.
func (s *Service) SubmitOrder(ctx context.Context, o *domain.Order) error {
	if o == nil || len(o.Lines) == 0 {
		return fmt.Errorf("%w: order has no lines", domain.ErrValidation)
	}
	if o.Status == "" {
		o.Status = domain.StatusPending
	}
	if o.Type == "" {
		o.Type = domain.OrderWalkIn
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = s.now().UTC()
		o.UpdatedAt = o.CreatedAt
	}
	if err := s.repo.Create(ctx, o, RegisterActor); err != nil {
		return submitErr(err)
	}
	s.publish(ctx, events.OrderEvent(events.TypeOrderPlaced, o, o.CreatedAt))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, f.Status)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", domain.ErrValidation)
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return s.repo.List(ctx, orderrepo.ListFilter{Status: f.Status, Limit: f.Limit, Offset: f.Offset})
}

// UpdateStatus applies an operator status change. Payment status is untouched.
func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, changedBy string) (*domain.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	changedBy = strings.TrimSpace(changedBy)
	if changedBy == "" {
		changedBy = "admin"
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	at := s.now().UTC()
	if err := o.TransitionTo(next, at); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, from, next, changedBy, at); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"order_id": id, "from": from, "to": next, "by": changedBy}).Info("order status changed")
	s.publish(ctx, events.OrderEvent(events.TypeOrderStatusChanged, o, at))
	return o, nil
}

// UpdatePaymentStatus settles a pending payment. Order status is untouched.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, next domain.PaymentStatus) (*domain.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrValidation, next)
	}
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.PaymentStatus
	at := s.now().UTC()
	if err := o.SetPaymentStatus(next, at); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePaymentStatus(ctx, id, from, next, at); err != nil {
		return nil, err
	}
	if o.Payment != nil {
		o.Payment.Status = next
	}
	s.publish(ctx, events.OrderEvent(events.TypePaymentStatusChanged, o, at))
	return o, nil
}

func (s *Service) History(ctx context.Context, id string) ([]domain.StatusLog, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.History(ctx, id)
}

// Summary reports sales between from and to. A zero range means today in UTC.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*domain.SalesSummary, error) {
	if from.IsZero() && to.IsZero() {
		now := s.now().UTC()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		to = from.Add(24 * time.Hour)
	}
	if to.IsZero() {
		to = s.now().UTC()
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", domain.ErrValidation)
	}
	return s.repo.Summary(ctx, from, to, 5)
}

// submitErr keeps context and already classified repository errors and
// reports any other failure as a network error.
func submitErr(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrData):
		return fmt.Errorf("submit order: %w", err)
	default:
		return fmt.Errorf("submit order: %w: %w", domain.ErrNetwork, err)
	}
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"order_id": e.OrderID, "type": e.Type}).Warn("publish order event")
	}
}
