package pricing

import (
	"errors"
	"fmt"
	"strings"

	"teapos/internal/domain"
)

// ErrSizeRequired is returned when a line item is built without a size.
var ErrSizeRequired = fmt.Errorf("%w: size required", domain.ErrValidation)

// BuildInput carries the customer's choices for one drink.
type BuildInput struct {
	MenuItem domain.MenuItem
	Size     *domain.SizeOption
	Sugar    string
	Ice      string
	Toppings []domain.ToppingOption
	Quantity int
}

// BuildLineItem prices a customized item. Sugar and ice fall back to the
// defaults in levels; duplicate toppings collapse to one.
func BuildLineItem(in BuildInput, levels domain.Levels) (domain.LineItem, error) {
	if in.Size == nil {
		return domain.LineItem{}, ErrSizeRequired
	}
	if strings.TrimSpace(in.MenuItem.Name) == "" {
		return domain.LineItem{}, fmt.Errorf("%w: menu item required", domain.ErrValidation)
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return domain.LineItem{}, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	sugar := strings.TrimSpace(in.Sugar)
	if sugar == "" {
		sugar = levels.DefaultSugar
	}
	ice := strings.TrimSpace(in.Ice)
	if ice == "" {
		ice = levels.DefaultIce
	}

	toppings := uniqueToppings(in.Toppings)
	labels := make([]string, 0, len(toppings))
	prices := make([]int64, 0, len(toppings))
	unit := in.MenuItem.PriceCents + in.Size.PriceCents
	for _, t := range toppings {
		labels = append(labels, t.Label)
		prices = append(prices, t.PriceCents)
		unit += t.PriceCents
	}
	if unit < 0 {
		return domain.LineItem{}, errors.New("line item price is negative")
	}

	return domain.LineItem{
		MenuItemID:        in.MenuItem.ID,
		Name:              in.MenuItem.Name,
		BasePriceCents:    in.MenuItem.PriceCents,
		Size:              in.Size.Label,
		SizePriceCents:    in.Size.PriceCents,
		Sugar:             sugar,
		Ice:               ice,
		Toppings:          labels,
		ToppingPriceCents: prices,
		Quantity:          qty,
		UnitPriceCents:    unit,
		PriceCents:        unit * int64(qty),
	}, nil
}

func uniqueToppings(in []domain.ToppingOption) []domain.ToppingOption {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.ToppingOption, 0, len(in))
	for _, t := range in {
		key := t.ID
		if key == "" {
			key = "label:" + t.Label
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
