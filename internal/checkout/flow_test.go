package checkout

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"teapos/internal/cart"
	"teapos/internal/domain"
	"teapos/internal/payment"

	"github.com/shopspring/decimal"
)

type stubSubmitter struct {
	mu      sync.Mutex
	err     error
	block   chan struct{}
	started chan struct{}
	orders  []*domain.Order
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, order *domain.Order) error {
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *stubSubmitter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func exampleLine() domain.LineItem {
	return domain.LineItem{MenuItemID: "m1", Name: "Fragrant Black Tea", Size: "Large", Quantity: 1, UnitPriceCents: 2300, PriceCents: 2300}
}

func newFlow(t *testing.T, sub Submitter, timeout time.Duration) (*Flow, *cart.Session) {
	t.Helper()
	session := cart.NewSession("reg-1", decimal.RequireFromString("0.08"), cart.NewMemoryStore(), nil)
	session.Add(context.Background(), exampleLine())
	session.Add(context.Background(), exampleLine())
	return NewFlow(session, payment.NewLocal(), sub, timeout, nil), session
}

func TestCheckoutCashSuccess(t *testing.T) {
	sub := &stubSubmitter{}
	flow, session := newFlow(t, sub, time.Second)
	before := session.View()

	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCash, CashReceivedCents: 5000})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if state.Phase != PhaseSucceeded || state.Order == nil {
		t.Fatalf("unexpected state %+v", state)
	}
	o := state.Order
	if !reflect.DeepEqual(o.Lines, before.Lines) {
		t.Fatalf("order lines differ from the cart:\norder %+v\ncart  %+v", o.Lines, before.Lines)
	}
	if o.TotalCents != before.TotalCents || !o.TaxRate.Equal(decimal.RequireFromString("0.08")) {
		t.Fatalf("order total %d rate %s, cart total %d", o.TotalCents, o.TaxRate, before.TotalCents)
	}
	if o.SubtotalCents != 4600 || o.TaxCents != 368 || o.TotalCents != 4968 || o.ChangeCents != 32 {
		t.Fatalf("unexpected order money %+v", o)
	}
	if o.Status != domain.StatusPending || o.PaymentStatus != domain.PaymentSuccess || o.Type != domain.OrderWalkIn {
		t.Fatalf("unexpected order statuses %+v", o)
	}
	if o.Payment == nil || o.Payment.OrderID != o.ID {
		t.Fatalf("expected transaction tied to order, got %+v", o.Payment)
	}
	if len(session.View().Lines) != 0 {
		t.Fatalf("expected cart cleared after success")
	}
	if sub.count() != 1 {
		t.Fatalf("expected one submitted order, got %d", sub.count())
	}

	if state, err := flow.Dismiss(); err != nil || state.Phase != PhaseIdle {
		t.Fatalf("expected idle after dismiss, got %+v err=%v", state, err)
	}
}

func TestCheckoutInsufficientCashIsBlocked(t *testing.T) {
	sub := &stubSubmitter{}
	flow, session := newFlow(t, sub, time.Second)

	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCash, CashReceivedCents: 4000})
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
	if state.Phase != PhaseIdle {
		t.Fatalf("blocked checkout must not change state, got %s", state.Phase)
	}
	if sub.count() != 0 || len(session.View().Lines) != 2 {
		t.Fatalf("blocked checkout must not submit or touch the cart")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	session := cart.NewSession("reg-2", decimal.Zero, nil, nil)
	flow := NewFlow(session, payment.NewLocal(), &stubSubmitter{}, time.Second, nil)
	if _, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutSubmitFailureKeepsCart(t *testing.T) {
	sub := &stubSubmitter{err: domain.ErrNetwork}
	flow, session := newFlow(t, sub, time.Second)

	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if state.Phase != PhaseFailed || state.Reason == "" || !errors.Is(state.Err, domain.ErrNetwork) {
		t.Fatalf("unexpected state %+v", state)
	}
	if len(session.View().Lines) != 2 {
		t.Fatalf("cart must be preserved after a failed submission")
	}

	sub.mu.Lock()
	sub.err = nil
	sub.mu.Unlock()
	state, err = flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true})
	if err != nil || state.Phase != PhaseSucceeded {
		t.Fatalf("expected retry from failed state to succeed, got %+v err=%v", state, err)
	}
}

func TestCheckoutUnprocessedCardFails(t *testing.T) {
	sub := &stubSubmitter{}
	flow, session := newFlow(t, sub, time.Second)

	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCard})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if state.Phase != PhaseFailed || !errors.Is(state.Err, domain.ErrPayment) {
		t.Fatalf("expected payment failure, got %+v", state)
	}
	if state.Payment == nil || state.Payment.Status != domain.PaymentFailed || state.Payment.AmountCents != 4968 {
		t.Fatalf("expected the declined transaction on the state, got %+v", state.Payment)
	}
	if sub.count() != 0 || len(session.View().Lines) != 2 {
		t.Fatalf("failed payment must not submit or clear the cart")
	}
}

func TestCheckoutInvoiceSubmitsPending(t *testing.T) {
	flow, _ := newFlow(t, &stubSubmitter{}, time.Second)
	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodInvoice, Type: domain.OrderPhone})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if state.Order.PaymentStatus != domain.PaymentPending || state.Order.Type != domain.OrderPhone {
		t.Fatalf("unexpected order %+v", state.Order)
	}
}

func TestCheckoutTimeout(t *testing.T) {
	sub := &stubSubmitter{block: make(chan struct{})}
	flow, session := newFlow(t, sub, 20*time.Millisecond)

	state, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if state.Phase != PhaseFailed || !errors.Is(state.Err, domain.ErrNetwork) {
		t.Fatalf("expected timeout failure, got %+v", state)
	}
	if len(session.View().Lines) != 2 {
		t.Fatalf("cart must be preserved after a timeout")
	}
}

func TestCheckoutRejectsConcurrentSubmission(t *testing.T) {
	sub := &stubSubmitter{block: make(chan struct{}), started: make(chan struct{}, 1)}
	flow, _ := newFlow(t, sub, 5*time.Second)

	done := make(chan State, 1)
	go func() {
		state, _ := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true})
		done <- state
	}()
	<-sub.started

	if got := flow.State().Phase; got != PhaseSubmitting {
		t.Fatalf("expected submitting, got %s", got)
	}
	if _, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true}); !errors.Is(err, ErrCheckoutInProgress) {
		t.Fatalf("expected ErrCheckoutInProgress, got %v", err)
	}
	if _, err := flow.Dismiss(); !errors.Is(err, ErrCheckoutInProgress) {
		t.Fatalf("dismiss during submission must be rejected, got %v", err)
	}

	close(sub.block)
	if state := <-done; state.Phase != PhaseSucceeded {
		t.Fatalf("expected first checkout to succeed, got %+v", state)
	}
	if sub.count() != 1 {
		t.Fatalf("expected exactly one order, got %d", sub.count())
	}
}

func TestCheckoutHoldsCartDuringSubmission(t *testing.T) {
	sub := &stubSubmitter{block: make(chan struct{}), started: make(chan struct{}, 1)}
	flow, session := newFlow(t, sub, 5*time.Second)
	before := session.View()

	done := make(chan State, 1)
	go func() {
		state, _ := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true})
		done <- state
	}()
	<-sub.started

	extra := exampleLine()
	extra.Name = "Oolong"
	if _, err := session.Add(context.Background(), extra); !errors.Is(err, ErrCheckoutInProgress) {
		t.Fatalf("expected add during submission to fail, got %v", err)
	}
	if _, err := session.RemoveAt(context.Background(), 0); !errors.Is(err, ErrCheckoutInProgress) {
		t.Fatalf("expected remove during submission to fail, got %v", err)
	}

	close(sub.block)
	state := <-done
	if state.Phase != PhaseSucceeded || !reflect.DeepEqual(state.Order.Lines, before.Lines) {
		t.Fatalf("unexpected order %+v", state.Order)
	}
	if len(session.View().Lines) != 0 {
		t.Fatalf("expected cart cleared after success")
	}
	if _, err := session.Add(context.Background(), extra); err != nil {
		t.Fatalf("cart must accept items after checkout: %v", err)
	}
}

func TestCheckoutFailureReleasesCart(t *testing.T) {
	flow, session := newFlow(t, &stubSubmitter{err: domain.ErrNetwork}, time.Second)
	if state, _ := flow.Checkout(context.Background(), Request{Method: domain.MethodCard, Processed: true}); state.Phase != PhaseFailed {
		t.Fatalf("expected failure, got %+v", state)
	}
	if state := flow.State(); state.Payment == nil || state.Payment.Status != domain.PaymentSuccess {
		t.Fatalf("expected the charged transaction on the failed state, got %+v", state.Payment)
	}
	if _, err := session.Add(context.Background(), exampleLine()); err != nil {
		t.Fatalf("cart must be editable after a failed checkout: %v", err)
	}
	if _, err := flow.Checkout(context.Background(), Request{Method: domain.MethodCash, CashReceivedCents: 10}); !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
	if _, err := session.Clear(context.Background()); err != nil {
		t.Fatalf("guard failure must release the cart: %v", err)
	}
}

func TestCheckoutUnknownMethod(t *testing.T) {
	flow, _ := newFlow(t, &stubSubmitter{}, time.Second)
	if _, err := flow.Checkout(context.Background(), Request{Method: "barter"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if flow.State().Phase != PhaseIdle {
		t.Fatalf("expected idle state")
	}
}

func TestRegistryReusesFlow(t *testing.T) {
	carts := cart.NewRegistry(decimal.Zero, cart.NewMemoryStore(), nil)
	reg := NewRegistry(carts, payment.NewLocal(), &stubSubmitter{}, time.Second, nil)
	a := reg.Get(context.Background(), "reg-1")
	if reg.Get(context.Background(), "reg-1") != a {
		t.Fatalf("expected the same flow")
	}
	if a.Session() != carts.Get(context.Background(), "reg-1") {
		t.Fatalf("flow must share the cart registry session")
	}
}
