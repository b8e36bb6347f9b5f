package domain

import "time"

// SalesSummary aggregates orders created within [From, To).
type SalesSummary struct {
	From         time.Time               `json:"from"`
	To           time.Time               `json:"to"`
	OrderCount   int                     `json:"orderCount"`
	RevenueCents int64                   `json:"revenueCents"`
	TaxCents     int64                   `json:"taxCents"`
	ByStatus     map[OrderStatus]int     `json:"byStatus"`
	ByMethod     map[PaymentMethod]int64 `json:"byMethodCents"`
	TopItems     []ItemSales             `json:"topItems"`
}

type ItemSales struct {
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenueCents"`
}
