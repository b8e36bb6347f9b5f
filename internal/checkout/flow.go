package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"teapos/internal/cart"
	"teapos/internal/domain"
	"teapos/internal/logging"
	"teapos/internal/payment"
	"teapos/internal/pricing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrCheckoutInProgress = cart.ErrCheckoutInProgress
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientCash   = pricing.ErrInsufficientCash
)

const DefaultTimeout = 15 * time.Second

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is the checkout state of one register. Order is set only when
// Phase is PhaseSucceeded; Reason only when Phase is PhaseFailed. Payment
// is the transaction of the last attempt, including declined ones.
type State struct {
	Phase   Phase               `json:"phase"`
	Order   *domain.Order       `json:"order,omitempty"`
	Payment *domain.Transaction `json:"payment,omitempty"`
	Reason  string              `json:"reason,omitempty"`
	Err     error               `json:"-"`
}

// Request is what the operator enters on the payment screen.
type Request struct {
	Method            domain.PaymentMethod `json:"paymentMethod"`
	CashReceivedCents int64                `json:"cashReceivedCents"`
	Processed         bool                 `json:"processed"`
	Type              domain.OrderType     `json:"orderType"`
}

// Submitter persists a finished order.
type Submitter interface {
	SubmitOrder(ctx context.Context, order *domain.Order) error
}

// Flow drives one register from cart to submitted order. At most one
// submission is in flight per Flow.
type Flow struct {
	mu        sync.Mutex
	state     State
	session   *cart.Session
	payments  payment.Processor
	submitter Submitter
	timeout   time.Duration
	now       func() time.Time
	logger    *logrus.Entry
}

func NewFlow(session *cart.Session, payments payment.Processor, submitter Submitter, timeout time.Duration, logger *logrus.Entry) *Flow {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Flow{
		state:     State{Phase: PhaseIdle},
		session:   session,
		payments:  payments,
		submitter: submitter,
		timeout:   timeout,
		now:       time.Now,
		logger:    logging.OrDiscard(logger).WithField("session_id", session.ID()),
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) Session() *cart.Session {
	return f.session
}

// Dismiss acknowledges a finished checkout and returns the flow to idle.
func (f *Flow) Dismiss() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Phase == PhaseSubmitting {
		return f.state, ErrCheckoutInProgress
	}
	f.state = State{Phase: PhaseIdle}
	return f.state, nil
}

// Checkout takes payment for the session's cart and submits the order.
// The cart is held for the whole attempt so the order matches what was
// charged. Guard failures return an error and leave the state untouched.
// Payment and submission failures move the flow to PhaseFailed, keep the
// cart, and are reported through the returned state with a nil error.
func (f *Flow) Checkout(ctx context.Context, req Request) (State, error) {
	order, err := f.begin(ctx, req)
	if err != nil {
		return f.State(), err
	}

	res, err := f.payments.Process(ctx, payment.Request{
		OrderID:           order.ID,
		Method:            order.PaymentMethod,
		AmountCents:       order.TotalCents,
		CashReceivedCents: order.CashReceivedCents,
		Processed:         req.Processed,
	})
	if err != nil {
		var attempt *domain.Transaction
		if res.Transaction.ID != "" {
			tx := res.Transaction
			attempt = &tx
		}
		return f.fail(ctx, err, attempt), nil
	}
	tx := res.Transaction
	order.Payment = &tx
	order.PaymentStatus = tx.Status
	order.ChangeCents = res.ChangeCents

	if err := f.submit(ctx, order); err != nil {
		return f.fail(ctx, err, order.Payment), nil
	}

	f.session.Release(ctx, true)
	f.logger.WithFields(logrus.Fields{
		"order_id":       order.ID,
		"total_cents":    order.TotalCents,
		"payment_method": order.PaymentMethod,
		"payment_status": order.PaymentStatus,
	}).Info("order submitted")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = State{Phase: PhaseSucceeded, Order: order, Payment: order.Payment}
	return f.state, nil
}

// begin checks every guard, holds the cart and enters PhaseSubmitting under
// one lock.
func (f *Flow) begin(ctx context.Context, req Request) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.Phase == PhaseSubmitting {
		return nil, ErrCheckoutInProgress
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.Method)
	}
	orderType := req.Type
	if orderType == "" {
		orderType = domain.OrderWalkIn
	}
	if !orderType.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrValidation, req.Type)
	}

	view, err := f.session.Hold()
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		f.session.Release(ctx, false)
		return nil, ErrEmptyCart
	}
	var cash int64
	if req.Method == domain.MethodCash {
		if req.CashReceivedCents < view.TotalCents {
			f.session.Release(ctx, false)
			return nil, ErrInsufficientCash
		}
		cash = req.CashReceivedCents
	}

	now := f.now().UTC()
	f.state = State{Phase: PhaseSubmitting}
	return &domain.Order{
		ID:                uuid.NewString(),
		Lines:             view.Lines,
		SubtotalCents:     view.SubtotalCents,
		TaxCents:          view.TaxCents,
		TotalCents:        view.TotalCents,
		TaxRate:           f.session.TaxRate(),
		PaymentMethod:     req.Method,
		PaymentStatus:     domain.PaymentPending,
		Status:            domain.StatusPending,
		Type:              orderType,
		CashReceivedCents: cash,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func (f *Flow) submit(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- f.submitter.SubmitOrder(ctx, order)
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: order submission timed out", domain.ErrNetwork)
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: order submission timed out", domain.ErrNetwork)
		}
		return ctx.Err()
	}
}

func (f *Flow) fail(ctx context.Context, err error, attempt *domain.Transaction) State {
	f.session.Release(ctx, false)
	entry := f.logger.WithError(err)
	if attempt != nil {
		entry = entry.WithFields(logrus.Fields{"transaction_id": attempt.ID, "payment_status": attempt.Status})
	}
	entry.Warn("checkout failed")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = State{Phase: PhaseFailed, Payment: attempt, Reason: domain.Message(err), Err: err}
	return f.state
}
