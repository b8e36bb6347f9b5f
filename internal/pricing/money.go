package pricing

import (
	"errors"
	"fmt"
	"strings"

	"teapos/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePrice converts user input such as "12.50" into cents.
func ParsePrice(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: price required", domain.ErrValidation)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid price %q", domain.ErrValidation, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("%w: price %q has more than two decimals", domain.ErrValidation, raw)
	}
	return d.Mul(hundred).IntPart(), nil
}

// ParseRate parses a tax rate such as "0.08875".
func ParseRate(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate %q: %w", raw, err)
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, errors.New("tax rate must be in [0, 1)")
	}
	return d, nil
}

// FormatCents renders cents as a plain decimal amount, e.g. 4968 -> "49.68".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
