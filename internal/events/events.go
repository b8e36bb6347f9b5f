// Package events fans order lifecycle events out to the kitchen display and
// to message brokers.
package events

import (
	"context"
	"errors"
	"time"

	"teapos/internal/domain"
)

const (
	TypeOrderPlaced          = "order.placed"
	TypeOrderStatusChanged   = "order.status_changed"
	TypePaymentStatusChanged = "order.payment_status_changed"
)

type Event struct {
	Type          string               `json:"type"`
	OrderID       string               `json:"orderId"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Order         *domain.Order        `json:"order,omitempty"`
	At            time.Time            `json:"at"`
}

// OrderEvent builds an event carrying a snapshot of o.
func OrderEvent(typ string, o *domain.Order, at time.Time) Event {
	return Event{
		Type:          typ,
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Order:         o,
		At:            at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
