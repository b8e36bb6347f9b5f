package domain

// LineItem is one customized product in a cart or order. Its price is frozen
// when built; later catalog changes never touch it.
type LineItem struct {
	MenuItemID        string   `json:"menuItemId"`
	Name              string   `json:"name"`
	BasePriceCents    int64    `json:"basePriceCents"`
	Size              string   `json:"size"`
	SizePriceCents    int64    `json:"sizePriceCents"`
	Sugar             string   `json:"sugar"`
	Ice               string   `json:"ice"`
	Toppings          []string `json:"toppings"`
	ToppingPriceCents []int64  `json:"toppingPriceCents"`
	Quantity          int      `json:"quantity"`
	UnitPriceCents    int64    `json:"unitPriceCents"`
	PriceCents        int64    `json:"priceCents"`
}

// Clone returns a deep copy so callers cannot alias the topping slices.
func (l LineItem) Clone() LineItem {
	out := l
	if l.Toppings != nil {
		out.Toppings = append([]string(nil), l.Toppings...)
	}
	if l.ToppingPriceCents != nil {
		out.ToppingPriceCents = append([]int64(nil), l.ToppingPriceCents...)
	}
	return out
}

// CloneLines deep-copies a slice of line items.
func CloneLines(lines []LineItem) []LineItem {
	if lines == nil {
		return nil
	}
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
