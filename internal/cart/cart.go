package cart

import (
	"teapos/internal/domain"
	"teapos/internal/pricing"

	"github.com/shopspring/decimal"
)

// Cart is an ordered list of line items. Rows are identified by position.
// Cart is not safe for concurrent use; Session serializes access.
type Cart struct {
	lines   []domain.LineItem
	taxRate decimal.Decimal
}

func New(taxRate decimal.Decimal) *Cart {
	return &Cart{taxRate: taxRate}
}

func (c *Cart) Add(item domain.LineItem) {
	c.lines = append(c.lines, item.Clone())
}

// RemoveAt drops the row at index. Out-of-range indexes are ignored.
func (c *Cart) RemoveAt(index int) bool {
	if index < 0 || index >= len(c.lines) {
		return false
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current rows.
func (c *Cart) Lines() []domain.LineItem {
	return domain.CloneLines(c.lines)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Subtotal() int64 {
	return pricing.Subtotal(c.lines)
}

func (c *Cart) Tax() int64 {
	return pricing.Tax(c.Subtotal(), c.taxRate)
}

func (c *Cart) Total() int64 {
	return c.Subtotal() + c.Tax()
}

func (c *Cart) Summary() pricing.Summary {
	return pricing.Totals(c.lines, c.taxRate)
}

func (c *Cart) TaxRate() decimal.Decimal {
	return c.taxRate
}

func (c *Cart) replace(lines []domain.LineItem) {
	c.lines = domain.CloneLines(lines)
}
