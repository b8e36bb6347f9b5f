package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teapos/internal/cache"
	"teapos/internal/domain"
	"teapos/internal/pricing"
)

// MenuItemInput is the admin form for a menu item. Price is user input
// such as "12.50".
type MenuItemInput struct {
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID string `json:"categoryId"`
	ImageURL   string `json:"imageUrl"`
}

// OptionInput is the admin form for a size or topping.
type OptionInput struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

func (s *Service) AddCategory(ctx context.Context, name string) (*domain.Category, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.Create(ctx, name)
	if err != nil {
		return nil, writeErr("add category", err)
	}
	s.invalidate(ctx, cache.KeyCategories)
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	name, err := required("name", name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.Rename(ctx, id, name)
	if err != nil {
		return nil, writeErr("update category", err)
	}
	s.invalidate(ctx, cache.KeyCategories)
	return c, nil
}

// DeleteCategory removes the category and, through the foreign key, its items.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return writeErr("delete category", err)
	}
	s.invalidate(ctx, cache.KeyCategories, cache.KeyMenuItems(id))
	return nil
}

func (s *Service) AddMenuItem(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := parseMenuItem(in)
	if err != nil {
		return nil, err
	}
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, writeErr("add menu item", err)
	}
	s.invalidate(ctx, cache.KeyMenuItems(created.CategoryID))
	return created, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id string, in MenuItemInput) (*domain.MenuItem, error) {
	item, err := parseMenuItem(in)
	if err != nil {
		return nil, err
	}
	prev, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, writeErr("update menu item", err)
	}
	item.ID = id
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, writeErr("update menu item", err)
	}
	s.invalidate(ctx, cache.KeyMenuItems(prev.CategoryID), cache.KeyMenuItems(updated.CategoryID))
	return updated, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id string) error {
	prev, err := s.items.Get(ctx, id)
	if err != nil {
		return writeErr("delete menu item", err)
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return writeErr("delete menu item", err)
	}
	s.invalidate(ctx, cache.KeyMenuItems(prev.CategoryID))
	return nil
}

func (s *Service) AddSize(ctx context.Context, in OptionInput) (*domain.SizeOption, error) {
	label, cents, err := parseOption(in)
	if err != nil {
		return nil, err
	}
	o, err := s.modifiers.CreateSize(ctx, label, cents)
	if err != nil {
		return nil, writeErr("add size", err)
	}
	s.invalidate(ctx, cache.KeySizes)
	return o, nil
}

func (s *Service) UpdateSize(ctx context.Context, id string, in OptionInput) (*domain.SizeOption, error) {
	label, cents, err := parseOption(in)
	if err != nil {
		return nil, err
	}
	o, err := s.modifiers.UpdateSize(ctx, domain.SizeOption{ID: id, Label: label, PriceCents: cents})
	if err != nil {
		return nil, writeErr("update size", err)
	}
	s.invalidate(ctx, cache.KeySizes)
	return o, nil
}

func (s *Service) DeleteSize(ctx context.Context, id string) error {
	if err := s.modifiers.DeleteSize(ctx, id); err != nil {
		return writeErr("delete size", err)
	}
	s.invalidate(ctx, cache.KeySizes)
	return nil
}

func (s *Service) AddTopping(ctx context.Context, in OptionInput) (*domain.ToppingOption, error) {
	label, cents, err := parseOption(in)
	if err != nil {
		return nil, err
	}
	o, err := s.modifiers.CreateTopping(ctx, label, cents)
	if err != nil {
		return nil, writeErr("add topping", err)
	}
	s.invalidate(ctx, cache.KeyToppings)
	return o, nil
}

func (s *Service) UpdateTopping(ctx context.Context, id string, in OptionInput) (*domain.ToppingOption, error) {
	label, cents, err := parseOption(in)
	if err != nil {
		return nil, err
	}
	o, err := s.modifiers.UpdateTopping(ctx, domain.ToppingOption{ID: id, Label: label, PriceCents: cents})
	if err != nil {
		return nil, writeErr("update topping", err)
	}
	s.invalidate(ctx, cache.KeyToppings)
	return o, nil
}

func (s *Service) DeleteTopping(ctx context.Context, id string) error {
	if err := s.modifiers.DeleteTopping(ctx, id); err != nil {
		return writeErr("delete topping", err)
	}
	s.invalidate(ctx, cache.KeyToppings)
	return nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.WithError(err).WithField("keys", keys).Warn("catalog cache invalidation failed")
	}
}

func parseMenuItem(in MenuItemInput) (domain.MenuItem, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return domain.MenuItem{}, err
	}
	categoryID, err := required("category", in.CategoryID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	cents, err := pricing.ParsePrice(in.Price)
	if err != nil {
		return domain.MenuItem{}, err
	}
	return domain.MenuItem{
		Name:       name,
		PriceCents: cents,
		CategoryID: categoryID,
		ImageURL:   strings.TrimSpace(in.ImageURL),
	}, nil
}

func parseOption(in OptionInput) (string, int64, error) {
	label, err := required("label", in.Label)
	if err != nil {
		return "", 0, err
	}
	cents, err := pricing.ParsePrice(in.Price)
	if err != nil {
		return "", 0, err
	}
	return label, cents, nil
}

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s required", domain.ErrValidation, field)
	}
	return v, nil
}

// writeErr keeps not-found and conflict errors and reports every other
// repository failure as a network error.
func writeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrNetwork, err)
}
