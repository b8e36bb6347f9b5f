package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is the snapshot of a cart taken at submission time. TaxRate is the
// rate TaxCents was computed with.
type Order struct {
	ID                string          `json:"id"`
	Lines             []LineItem      `json:"lines"`
	SubtotalCents     int64           `json:"subtotalCents"`
	TaxCents          int64           `json:"taxCents"`
	TotalCents        int64           `json:"totalCents"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	PaymentStatus     PaymentStatus   `json:"paymentStatus"`
	Status            OrderStatus     `json:"status"`
	Type              OrderType       `json:"type"`
	CashReceivedCents int64           `json:"cashReceivedCents,omitempty"`
	ChangeCents       int64           `json:"changeCents,omitempty"`
	Payment           *Transaction    `json:"payment,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// Transaction records a single payment attempt.
type Transaction struct {
	ID          string        `json:"id"`
	OrderID     string        `json:"orderId"`
	AmountCents int64         `json:"amountCents"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	Reference   string        `json:"reference,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// StatusLog is one entry in an order's status history.
type StatusLog struct {
	OrderID   string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	ChangedBy string      `json:"changedBy"`
	ChangedAt time.Time   `json:"changedAt"`
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusInProgress     OrderStatus = "in_progress"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusCompleted      OrderStatus = "completed"
	StatusCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusInProgress, StatusReady, StatusCompleted, StatusCancelled},
	StatusInProgress:     {StatusReady, StatusCompleted, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusCompleted, StatusCancelled},
	StatusOutForDelivery: {StatusCompleted, StatusCancelled},
	StatusCompleted:      {},
	StatusCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether an operator may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to next or returns ErrInvalidStatusTransition.
func (o *Order) TransitionTo(next OrderStatus, at time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = at
	return nil
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentSuccess, PaymentFailed:
		return true
	}
	return false
}

// SetPaymentStatus settles a pending payment. It never touches the order status.
func (o *Order) SetPaymentStatus(next PaymentStatus, at time.Time) error {
	if o.PaymentStatus != PaymentPending || next == PaymentPending || !next.Valid() {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidStatusTransition, o.PaymentStatus, next)
	}
	o.PaymentStatus = next
	o.UpdatedAt = at
	return nil
}

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodCard        PaymentMethod = "card"
	MethodContactless PaymentMethod = "contactless"
	MethodMobile      PaymentMethod = "mobile"
	MethodQlub        PaymentMethod = "qlub"
	MethodGiftCard    PaymentMethod = "gift_card"
	MethodInvoice     PaymentMethod = "invoice"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodContactless, MethodMobile, MethodQlub, MethodGiftCard, MethodInvoice:
		return true
	}
	return false
}

func (m PaymentMethod) DisplayName() string {
	switch m {
	case MethodCash:
		return "Cash"
	case MethodCard:
		return "Credit/Debit Card"
	case MethodContactless:
		return "Contactless"
	case MethodMobile:
		return "Mobile"
	case MethodQlub:
		return "Qlub"
	case MethodGiftCard:
		return "Gift Card"
	case MethodInvoice:
		return "Invoice"
	default:
		return string(m)
	}
}

// OrderType records the channel an order came through.
type OrderType string

const (
	OrderWalkIn    OrderType = "walk_in"
	OrderTalabat   OrderType = "talabat"
	OrderDeliveroo OrderType = "deliveroo"
	OrderUberEats  OrderType = "uber_eats"
	OrderPhone     OrderType = "phone"
	OrderOnline    OrderType = "online"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderWalkIn, OrderTalabat, OrderDeliveroo, OrderUberEats, OrderPhone, OrderOnline:
		return true
	}
	return false
}
