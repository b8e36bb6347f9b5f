package payment

import (
	"context"
	"errors"
	"testing"

	"teapos/internal/domain"
	"teapos/internal/pricing"
)

func TestLocalCash(t *testing.T) {
	res, err := NewLocal().Process(context.Background(), Request{
		OrderID:           "o1",
		Method:            domain.MethodCash,
		AmountCents:       4968,
		CashReceivedCents: 5000,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.ChangeCents != 32 {
		t.Fatalf("expected change 32, got %d", res.ChangeCents)
	}
	if res.Transaction.Status != domain.PaymentSuccess || res.Transaction.ID == "" || res.Transaction.OrderID != "o1" {
		t.Fatalf("unexpected transaction %+v", res.Transaction)
	}
}

func TestLocalCashInsufficient(t *testing.T) {
	_, err := NewLocal().Process(context.Background(), Request{Method: domain.MethodCash, AmountCents: 4968, CashReceivedCents: 4000})
	if !errors.Is(err, pricing.ErrInsufficientCash) {
		t.Fatalf("expected ErrInsufficientCash, got %v", err)
	}
}

func TestLocalTerminalPayment(t *testing.T) {
	p := NewLocal()
	res, err := p.Process(context.Background(), Request{Method: domain.MethodCard, AmountCents: 100, Processed: true})
	if err != nil || res.Transaction.Status != domain.PaymentSuccess {
		t.Fatalf("expected success, got %+v err=%v", res, err)
	}

	res, err = p.Process(context.Background(), Request{Method: domain.MethodQlub, AmountCents: 100})
	if !errors.Is(err, domain.ErrPayment) {
		t.Fatalf("expected payment error, got %v", err)
	}
	if res.Transaction.Status != domain.PaymentFailed {
		t.Fatalf("expected failed transaction, got %+v", res.Transaction)
	}
}

func TestLocalInvoiceIsPending(t *testing.T) {
	res, err := NewLocal().Process(context.Background(), Request{Method: domain.MethodInvoice, AmountCents: 100})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Transaction.Status != domain.PaymentPending {
		t.Fatalf("expected pending, got %s", res.Transaction.Status)
	}
}

func TestLocalRejectsUnknownMethod(t *testing.T) {
	_, err := NewLocal().Process(context.Background(), Request{Method: "barter", AmountCents: 100})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
