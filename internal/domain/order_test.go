package domain

import (
	"errors"
	"testing"
	"time"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusInProgress, StatusReady, true},
		{StatusReady, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusCompleted, true},
		{StatusReady, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, OrderStatus("bogus"), false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestOrderTransitionToKeepsPaymentStatus(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := &Order{Status: StatusPending, PaymentStatus: PaymentSuccess}

	if err := o.TransitionTo(StatusCompleted, now); err != nil {
		t.Fatalf("TransitionTo: %v", err)
	}
	if o.Status != StatusCompleted || !o.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.PaymentStatus != PaymentSuccess {
		t.Fatalf("payment status changed to %s", o.PaymentStatus)
	}

	err := o.TransitionTo(StatusPending, now)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
	if o.Status != StatusCompleted {
		t.Fatalf("status must be unchanged after a rejected transition")
	}
}

func TestOrderSetPaymentStatus(t *testing.T) {
	o := &Order{Status: StatusPending, PaymentStatus: PaymentPending}
	if err := o.SetPaymentStatus(PaymentSuccess, time.Now()); err != nil {
		t.Fatalf("SetPaymentStatus: %v", err)
	}
	if o.Status != StatusPending {
		t.Fatalf("order status changed to %s", o.Status)
	}
	if err := o.SetPaymentStatus(PaymentFailed, time.Now()); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected settled payment to be final, got %v", err)
	}
}

func TestPaymentMethodValid(t *testing.T) {
	if !MethodQlub.Valid() || !MethodInvoice.Valid() {
		t.Fatalf("expected known methods to be valid")
	}
	if PaymentMethod("bitcoin").Valid() {
		t.Fatalf("expected unknown method to be invalid")
	}
	if MethodCard.DisplayName() != "Credit/Debit Card" {
		t.Fatalf("unexpected display name %q", MethodCard.DisplayName())
	}
}

func TestMessage(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
	got := Message(ErrNetwork)
	if got == "" || got == ErrNetwork.Error() {
		t.Fatalf("expected recovery text for network errors, got %q", got)
	}
}

func TestLineItemCloneIsDeep(t *testing.T) {
	l := LineItem{Name: "Tea", Toppings: []string{"Boba"}, ToppingPriceCents: []int64{100}}
	c := l.Clone()
	c.Toppings[0] = "Jelly"
	c.ToppingPriceCents[0] = 0
	if l.Toppings[0] != "Boba" || l.ToppingPriceCents[0] != 100 {
		t.Fatalf("clone shares slices with the original")
	}
}
