package payment

import (
	"context"
	"fmt"
	"time"

	"teapos/internal/domain"
	"teapos/internal/pricing"

	"github.com/google/uuid"
)

// Request describes one payment attempt against an order total.
type Request struct {
	OrderID           string
	Method            domain.PaymentMethod
	AmountCents       int64
	CashReceivedCents int64
	// Processed is the operator's confirmation that an external terminal
	// accepted a non-cash payment.
	Processed bool
}

// Result is the outcome of a payment attempt.
type Result struct {
	Transaction domain.Transaction
	ChangeCents int64
}

type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// Local settles payments at the register: cash in the drawer, card and
// wallet payments confirmed from a separate terminal, invoices left pending.
type Local struct {
	now func() time.Time
}

func NewLocal() *Local {
	return &Local{now: time.Now}
}

// Process returns ErrInsufficientCash for short cash and a payment error
// carrying the failed transaction when a terminal payment was not confirmed.
func (p *Local) Process(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !req.Method.Valid() {
		return Result{}, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.Method)
	}
	if req.AmountCents < 0 {
		return Result{}, fmt.Errorf("%w: negative amount", domain.ErrValidation)
	}

	tx := domain.Transaction{
		ID:          uuid.NewString(),
		OrderID:     req.OrderID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		CreatedAt:   p.now().UTC(),
	}

	switch req.Method {
	case domain.MethodCash:
		change, err := pricing.Change(req.CashReceivedCents, req.AmountCents)
		if err != nil {
			return Result{}, err
		}
		tx.Status = domain.PaymentSuccess
		tx.Reference = "cash:" + pricing.FormatCents(req.CashReceivedCents)
		return Result{Transaction: tx, ChangeCents: change}, nil
	case domain.MethodInvoice:
		tx.Status = domain.PaymentPending
		tx.Reference = "invoice"
		return Result{Transaction: tx}, nil
	default:
		if !req.Processed {
			tx.Status = domain.PaymentFailed
			return Result{Transaction: tx}, fmt.Errorf("%w: %s payment was not processed", domain.ErrPayment, req.Method.DisplayName())
		}
		tx.Status = domain.PaymentSuccess
		tx.Reference = string(req.Method)
		return Result{Transaction: tx}, nil
	}
}
