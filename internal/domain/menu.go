package domain

import "time"

// MenuItem is a sellable drink or snack. Prices are in minor currency units.
type MenuItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	CategoryID string    `json:"categoryId"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SizeOption adds PriceCents on top of the item's base price.
type SizeOption struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"priceCents"`
}

// ToppingOption adds PriceCents on top of the item's base price.
type ToppingOption struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceCents int64  `json:"priceCents"`
}

// Levels lists the sugar and ice choices offered when customizing a drink.
type Levels struct {
	Sugar        []string `json:"sugar"`
	Ice          []string `json:"ice"`
	DefaultSugar string   `json:"defaultSugar"`
	DefaultIce   string   `json:"defaultIce"`
}
