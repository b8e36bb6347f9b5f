package modifier

import (
	"context"
	"errors"
	"testing"

	"teapos/internal/db/dbtest"
	"teapos/internal/domain"
)

func TestPostgres_Sizes(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	repo := NewPostgres(pool)

	for label, price := range map[string]int64{"Small": 0, "Medium": 300, "Large": 600} {
		if _, err := repo.CreateSize(ctx, label, price); err != nil {
			t.Fatalf("create %s: %v", label, err)
		}
	}
	if _, err := repo.CreateSize(ctx, "Small", 0); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	sizes, err := repo.ListSizes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sizes) != 3 || sizes[0].Label != "Small" || sizes[2].Label != "Large" {
		t.Fatalf("expected sizes ordered by price, got %+v", sizes)
	}

	large := sizes[2]
	large.PriceCents = 700
	updated, err := repo.UpdateSize(ctx, large)
	if err != nil || updated.PriceCents != 700 {
		t.Fatalf("update: %+v err=%v", updated, err)
	}
	if err := repo.DeleteSize(ctx, large.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteSize(ctx, large.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_ToppingsUpsert(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	repo := NewPostgres(pool)

	first, err := repo.UpsertTopping(ctx, "Boba", 200)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.UpsertTopping(ctx, "Boba", 250)
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if first.ID != second.ID || second.PriceCents != 250 {
		t.Fatalf("unexpected upsert result %+v", second)
	}
	if _, err := repo.UpdateTopping(ctx, domain.ToppingOption{ID: "00000000-0000-0000-0000-000000000000", Label: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
