package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teapos/internal/cache"
	"teapos/internal/domain"
	"teapos/internal/logging"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Service serves the menu and modifier catalog. Reads never fail: they fall
// back to the built-in catalog when the database is unavailable or returns
// unusable rows. Admin writes fail explicitly.
type Service struct {
	categories categoryRepo
	items      menuItemRepo
	modifiers  modifierRepo
	cache      catalogCache
	defaults   Defaults
	group      singleflight.Group
	logger     *logrus.Entry
}

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type menuItemRepo interface {
	ListByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type modifierRepo interface {
	ListSizes(ctx context.Context) ([]domain.SizeOption, error)
	CreateSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error)
	UpdateSize(ctx context.Context, s domain.SizeOption) (*domain.SizeOption, error)
	DeleteSize(ctx context.Context, id string) error
	ListToppings(ctx context.Context) ([]domain.ToppingOption, error)
	CreateTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error)
	UpdateTopping(ctx context.Context, t domain.ToppingOption) (*domain.ToppingOption, error)
	DeleteTopping(ctx context.Context, id string) error
}

type catalogCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// New wires the catalog. c may be nil to run without a cache.
func New(categories categoryRepo, items menuItemRepo, modifiers modifierRepo, c catalogCache, logger *logrus.Entry) *Service {
	return &Service{
		categories: categories,
		items:      items,
		modifiers:  modifiers,
		cache:      c,
		defaults:   BuiltIn(),
		logger:     logging.OrDiscard(logger).WithField("component", "catalog"),
	}
}

func (s *Service) LoadCategories(ctx context.Context) []domain.Category {
	return load(ctx, s, cache.KeyCategories, s.categories.List, validateCategories, s.defaults.Categories)
}

func (s *Service) LoadMenuItems(ctx context.Context, categoryID string) []domain.MenuItem {
	fallback := make([]domain.MenuItem, 0)
	for _, m := range s.defaults.MenuItems {
		if m.CategoryID == categoryID {
			fallback = append(fallback, m)
		}
	}
	fetch := func(ctx context.Context) ([]domain.MenuItem, error) {
		return s.items.ListByCategory(ctx, categoryID)
	}
	return load(ctx, s, cache.KeyMenuItems(categoryID), fetch, validateMenuItems, fallback)
}

func (s *Service) LoadSizes(ctx context.Context) []domain.SizeOption {
	return load(ctx, s, cache.KeySizes, s.modifiers.ListSizes, validateSizes, s.defaults.Sizes)
}

func (s *Service) LoadToppings(ctx context.Context) []domain.ToppingOption {
	return load(ctx, s, cache.KeyToppings, s.modifiers.ListToppings, validateToppings, s.defaults.Toppings)
}

func (s *Service) Levels() domain.Levels {
	return s.defaults.Levels
}

// MenuItem looks an item up by id, consulting the built-in catalog when the
// database cannot answer.
func (s *Service) MenuItem(ctx context.Context, id string) (domain.MenuItem, error) {
	item, err := s.items.Get(ctx, id)
	switch {
	case err == nil && validateMenuItems([]domain.MenuItem{*item}) == nil:
		return *item, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		s.logger.WithError(err).WithField("menu_item_id", id).Warn("menu item lookup failed, using built-in catalog")
	}
	for _, m := range s.defaults.MenuItems {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
}

func (s *Service) Size(ctx context.Context, id string) (domain.SizeOption, error) {
	for _, o := range s.LoadSizes(ctx) {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.SizeOption{}, fmt.Errorf("size %s: %w", id, domain.ErrNotFound)
}

func (s *Service) Topping(ctx context.Context, id string) (domain.ToppingOption, error) {
	for _, o := range s.LoadToppings(ctx) {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.ToppingOption{}, fmt.Errorf("topping %s: %w", id, domain.ErrNotFound)
}

// load reads through cache, repository and fallback in that order.
// Concurrent misses on one key share a single repository call.
func load[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) ([]T, error), validate func([]T) error, fallback []T) []T {
	if s.cache != nil {
		var cached []T
		ok, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("catalog cache read failed")
		}
		if ok && len(cached) > 0 {
			return cached
		}
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		rows, err := fetch(ctx)
		if err != nil {
			s.degrade(key, fmt.Errorf("%w: %v", domain.ErrNetwork, err))
			return fallback, nil
		}
		if len(rows) == 0 {
			s.degrade(key, fmt.Errorf("%w: no rows", domain.ErrData))
			return fallback, nil
		}
		if err := validate(rows); err != nil {
			s.degrade(key, err)
			return fallback, nil
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, rows); err != nil {
				s.logger.WithError(err).WithField("key", key).Warn("catalog cache write failed")
			}
		}
		return rows, nil
	})
	return append([]T(nil), v.([]T)...)
}

func (s *Service) degrade(key string, cause error) {
	kind := "data"
	if errors.Is(cause, domain.ErrNetwork) {
		kind = "network"
	}
	s.logger.WithError(cause).WithFields(logrus.Fields{"key": key, "cause": kind}).Warn("serving built-in catalog")
}

func validateCategories(rows []domain.Category) error {
	for _, c := range rows {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category without id or name", domain.ErrData)
		}
	}
	return nil
}

func validateMenuItems(rows []domain.MenuItem) error {
	for _, m := range rows {
		if strings.TrimSpace(m.Name) == "" || m.PriceCents < 0 {
			return fmt.Errorf("%w: malformed menu item %q", domain.ErrData, m.ID)
		}
	}
	return nil
}

func validateSizes(rows []domain.SizeOption) error {
	for _, o := range rows {
		if strings.TrimSpace(o.Label) == "" || o.PriceCents < 0 {
			return fmt.Errorf("%w: malformed size %q", domain.ErrData, o.ID)
		}
	}
	return nil
}

func validateToppings(rows []domain.ToppingOption) error {
	for _, o := range rows {
		if strings.TrimSpace(o.Label) == "" || o.PriceCents < 0 {
			return fmt.Errorf("%w: malformed topping %q", domain.ErrData, o.ID)
		}
	}
	return nil
}
