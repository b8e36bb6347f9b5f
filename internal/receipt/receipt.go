// Package receipt renders plain-text customer receipts for stored orders.
package receipt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"teapos/internal/domain"
	"teapos/internal/pricing"

	"github.com/shopspring/decimal"
)

const width = 40

type Options struct {
	StoreName string
	Currency  string
	// TaxRate is printed only for orders stored without their own rate.
	TaxRate decimal.Decimal
	// Sugar and ice choices equal to these are left off the receipt.
	DefaultSugar string
	DefaultIce   string
}

// Render writes the receipt for o to w.
func Render(w io.Writer, o *domain.Order, opts Options) error {
	if o == nil {
		return fmt.Errorf("%w: no order", domain.ErrValidation)
	}
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", width)
	thin := strings.Repeat("-", width)

	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, center(strings.ToUpper(opts.StoreName)))
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "Order: %s\n", shortID(o.ID))
	fmt.Fprintf(bw, "Date: %s\n", o.CreatedAt.Format("Jan 2, 2006 15:04"))
	if o.Payment != nil && o.Payment.ID != "" {
		fmt.Fprintf(bw, "Transaction: %s\n", o.Payment.ID)
	}
	fmt.Fprintln(bw, thin)

	for _, l := range o.Lines {
		name := l.Name
		if l.Quantity > 1 {
			name = fmt.Sprintf("%dx %s", l.Quantity, l.Name)
		}
		line(bw, name, money(opts.Currency, l.PriceCents))
		if l.Size != "" {
			fmt.Fprintf(bw, "  Size: %s\n", l.Size)
		}
		if l.Sugar != "" && l.Sugar != opts.DefaultSugar {
			fmt.Fprintf(bw, "  Sugar: %s\n", l.Sugar)
		}
		if l.Ice != "" && l.Ice != opts.DefaultIce {
			fmt.Fprintf(bw, "  Ice: %s\n", l.Ice)
		}
		if len(l.Toppings) > 0 {
			fmt.Fprintf(bw, "  Toppings: %s\n", strings.Join(l.Toppings, ", "))
		}
	}

	fmt.Fprintln(bw, thin)
	line(bw, "Subtotal", money(opts.Currency, o.SubtotalCents))
	line(bw, fmt.Sprintf("Tax (%s%%)", taxRate(o, opts).Mul(decimal.NewFromInt(100)).String()), money(opts.Currency, o.TaxCents))
	fmt.Fprintln(bw, thin)
	line(bw, "TOTAL", money(opts.Currency, o.TotalCents))
	fmt.Fprintln(bw, thin)

	line(bw, "Payment", o.PaymentMethod.DisplayName())
	line(bw, "Status", strings.ToUpper(string(o.PaymentStatus)))
	if o.PaymentMethod == domain.MethodCash && o.CashReceivedCents > 0 {
		line(bw, "Cash", money(opts.Currency, o.CashReceivedCents))
		line(bw, "Change", money(opts.Currency, o.ChangeCents))
	}
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw, center("Thank you!"))
	fmt.Fprintln(bw, rule)
	return bw.Flush()
}

// taxRate prefers the rate recorded on the order. Orders stored before
// rates were recorded carry a zero rate with non-zero tax.
func taxRate(o *domain.Order, opts Options) decimal.Decimal {
	if o.TaxRate.IsZero() && o.TaxCents != 0 {
		return opts.TaxRate
	}
	return o.TaxRate
}

func line(w io.Writer, label, value string) {
	pad := width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(w, "%s%s%s\n", label, strings.Repeat(" ", pad), value)
}

func center(s string) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", (width-len(s))/2) + s
}

func money(currency string, cents int64) string {
	if currency == "" {
		currency = "$"
	}
	return currency + pricing.FormatCents(cents)
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
