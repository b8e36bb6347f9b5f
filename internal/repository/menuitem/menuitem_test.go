package menuitem

import (
	"context"
	"errors"
	"testing"

	"teapos/internal/db/dbtest"
	"teapos/internal/domain"
	"teapos/internal/repository/category"
)

func TestPostgres_CRUD(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	cat, err := category.NewPostgres(pool).Create(ctx, "Milk Tea")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	repo := NewPostgres(pool, nil)
	item, err := repo.Create(ctx, domain.MenuItem{Name: "Brown Sugar Boba", PriceCents: 1500, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ID == "" || item.PriceCents != 1500 || item.ImageURL != "" {
		t.Fatalf("unexpected item %+v", item)
	}

	item.PriceCents = 1600
	item.ImageURL = "https://cdn.example/boba.png"
	updated, err := repo.Update(ctx, *item)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 1600 || updated.ImageURL == "" {
		t.Fatalf("unexpected update %+v", updated)
	}

	list, err := repo.ListByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != item.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := repo.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	_, err := NewPostgres(pool, nil).Create(ctx, domain.MenuItem{
		Name:       "Orphan",
		PriceCents: 100,
		CategoryID: "00000000-0000-0000-0000-000000000000",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_UpsertByCategoryAndName(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	cat, err := category.NewPostgres(pool).Upsert(ctx, "Coffee")
	if err != nil {
		t.Fatalf("upsert category: %v", err)
	}
	repo := NewPostgres(pool, nil)
	first, err := repo.Upsert(ctx, domain.MenuItem{Name: "Latte", PriceCents: 1800, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, domain.MenuItem{Name: "Latte", PriceCents: 1900, CategoryID: cat.ID})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID || second.PriceCents != 1900 {
		t.Fatalf("expected price refresh on same row, got %+v", second)
	}
}
