package seed

import (
	"context"
	"fmt"

	"teapos/internal/domain"
	"teapos/internal/service/catalog"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, name string) (*domain.Category, error)
}

type MenuItemWriter interface {
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

type ModifierWriter interface {
	UpsertSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error)
	UpsertTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error)
}

// Result counts the rows written by Apply.
type Result struct {
	Categories int
	MenuItems  int
	Sizes      int
	Toppings   int
}

// Apply writes the built-in catalog. It is idempotent: categories match on
// name, items on (category, name), sizes and toppings on label.
func Apply(ctx context.Context, categories CategoryWriter, items MenuItemWriter, modifiers ModifierWriter, d catalog.Defaults) (Result, error) {
	var res Result

	// Built-in ids are replaced by whatever the database assigned.
	ids := make(map[string]string, len(d.Categories))
	for _, c := range d.Categories {
		stored, err := categories.Upsert(ctx, c.Name)
		if err != nil {
			return res, fmt.Errorf("upsert category %s: %w", c.Name, err)
		}
		ids[c.ID] = stored.ID
		res.Categories++
	}

	for _, m := range d.MenuItems {
		categoryID, ok := ids[m.CategoryID]
		if !ok {
			return res, fmt.Errorf("menu item %s: %w: unknown category %s", m.Name, domain.ErrData, m.CategoryID)
		}
		m.ID = ""
		m.CategoryID = categoryID
		if _, err := items.Upsert(ctx, m); err != nil {
			return res, fmt.Errorf("upsert menu item %s: %w", m.Name, err)
		}
		res.MenuItems++
	}

	for _, s := range d.Sizes {
		if _, err := modifiers.UpsertSize(ctx, s.Label, s.PriceCents); err != nil {
			return res, fmt.Errorf("upsert size %s: %w", s.Label, err)
		}
		res.Sizes++
	}
	for _, t := range d.Toppings {
		if _, err := modifiers.UpsertTopping(ctx, t.Label, t.PriceCents); err != nil {
			return res, fmt.Errorf("upsert topping %s: %w", t.Label, err)
		}
		res.Toppings++
	}
	return res, nil
}
