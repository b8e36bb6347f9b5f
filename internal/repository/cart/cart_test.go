package cart

import (
	"context"
	"testing"
	"time"

	"teapos/internal/db/dbtest"
	"teapos/internal/domain"
)

func TestPostgres_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	repo := NewPostgres(pool)

	lines, err := repo.Load(ctx, "pos:cart:reg-1")
	if err != nil || lines != nil {
		t.Fatalf("expected empty load, got %v, %v", lines, err)
	}

	want := []domain.LineItem{{
		MenuItemID: "m1", Name: "Jasmine Milk Tea", Size: "Large", Sugar: "Less", Ice: "Normal",
		Toppings: []string{"Boba"}, ToppingPriceCents: []int64{200}, Quantity: 2, UnitPriceCents: 1700, PriceCents: 3400,
	}}
	if err := repo.Save(ctx, "pos:cart:reg-1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want[0].Quantity = 3
	if err := repo.Save(ctx, "pos:cart:reg-1", want); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := repo.Load(ctx, "pos:cart:reg-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 3 || got[0].Toppings[0] != "Boba" {
		t.Fatalf("unexpected snapshot %+v", got)
	}

	if err := repo.Delete(ctx, "pos:cart:reg-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := repo.Load(ctx, "pos:cart:reg-1"); got != nil {
		t.Fatalf("expected snapshot gone, got %+v", got)
	}
}

func TestPostgres_Purge(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(ctx, t)
	repo := NewPostgres(pool)

	if err := repo.Save(ctx, "pos:cart:old", []domain.LineItem{{Name: "Tea", Quantity: 1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	n, err := repo.Purge(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged snapshot, got %d", n)
	}
}
