package category

import (
	"context"
	"errors"
	"testing"

	"teapos/internal/db/dbtest"
	"teapos/internal/domain"
)

func TestPostgres_CreateAndList(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	repo := NewPostgres(pool)
	cat, err := repo.Create(ctx, "Milk Tea")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.ID == "" || cat.Name != "Milk Tea" {
		t.Fatalf("unexpected category %+v", cat)
	}

	if _, err := repo.Create(ctx, "Milk Tea"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != cat.ID {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestPostgres_UpsertReturnsExisting(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	repo := NewPostgres(pool)
	first, err := repo.Upsert(ctx, "Fruit Tea")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, "Fruit Tea")
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same ID after upsert")
	}
}

func TestPostgres_RenameAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)

	repo := NewPostgres(pool)
	cat, err := repo.Create(ctx, "Coffee")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	renamed, err := repo.Rename(ctx, cat.ID, "Espresso")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Espresso" {
		t.Fatalf("unexpected rename %+v", renamed)
	}
	if err := repo.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, cat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}
