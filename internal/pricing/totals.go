package pricing

import (
	"fmt"

	"teapos/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrInsufficientCash is returned when the cash handed over does not cover the total.
var ErrInsufficientCash = fmt.Errorf("%w: cash received is less than the total", domain.ErrValidation)

// Summary aggregates the money figures of a cart or order.
type Summary struct {
	SubtotalCents int64 `json:"subtotalCents"`
	TaxCents      int64 `json:"taxCents"`
	TotalCents    int64 `json:"totalCents"`
}

// Subtotal sums the frozen prices of lines.
func Subtotal(lines []domain.LineItem) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.PriceCents
	}
	return sum
}

// Tax applies rate to subtotal, rounding half-even to whole cents.
func Tax(subtotal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotal).Mul(rate).RoundBank(0).IntPart()
}

// Totals computes subtotal, tax and total for lines at the given rate.
func Totals(lines []domain.LineItem, rate decimal.Decimal) Summary {
	sub := Subtotal(lines)
	tax := Tax(sub, rate)
	return Summary{SubtotalCents: sub, TaxCents: tax, TotalCents: sub + tax}
}

// Change returns received-total, or ErrInsufficientCash when it would be negative.
func Change(received, total int64) (int64, error) {
	change := received - total
	if change < 0 {
		return 0, ErrInsufficientCash
	}
	return change, nil
}
