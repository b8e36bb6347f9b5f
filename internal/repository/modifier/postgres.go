package modifier

import (
	"context"

	"teapos/internal/domain"
	"teapos/internal/repository/pgutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	sizesTable    = "sizes"
	toppingsTable = "toppings"
)

type option struct {
	ID         string
	Label      string
	PriceCents int64
}

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListSizes(ctx context.Context) ([]domain.SizeOption, error) {
	opts, err := r.list(ctx, sizesTable)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SizeOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, domain.SizeOption(o))
	}
	return out, nil
}

func (r *postgresRepo) CreateSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error) {
	o, err := r.create(ctx, sizesTable, label, priceCents)
	if err != nil {
		return nil, err
	}
	s := domain.SizeOption(*o)
	return &s, nil
}

func (r *postgresRepo) UpdateSize(ctx context.Context, s domain.SizeOption) (*domain.SizeOption, error) {
	o, err := r.update(ctx, sizesTable, option(s))
	if err != nil {
		return nil, err
	}
	out := domain.SizeOption(*o)
	return &out, nil
}

func (r *postgresRepo) DeleteSize(ctx context.Context, id string) error {
	return r.delete(ctx, sizesTable, id)
}

func (r *postgresRepo) UpsertSize(ctx context.Context, label string, priceCents int64) (*domain.SizeOption, error) {
	o, err := r.upsert(ctx, sizesTable, label, priceCents)
	if err != nil {
		return nil, err
	}
	s := domain.SizeOption(*o)
	return &s, nil
}

func (r *postgresRepo) ListToppings(ctx context.Context) ([]domain.ToppingOption, error) {
	opts, err := r.list(ctx, toppingsTable)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ToppingOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, domain.ToppingOption(o))
	}
	return out, nil
}

func (r *postgresRepo) CreateTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error) {
	o, err := r.create(ctx, toppingsTable, label, priceCents)
	if err != nil {
		return nil, err
	}
	t := domain.ToppingOption(*o)
	return &t, nil
}

func (r *postgresRepo) UpdateTopping(ctx context.Context, t domain.ToppingOption) (*domain.ToppingOption, error) {
	o, err := r.update(ctx, toppingsTable, option(t))
	if err != nil {
		return nil, err
	}
	out := domain.ToppingOption(*o)
	return &out, nil
}

func (r *postgresRepo) DeleteTopping(ctx context.Context, id string) error {
	return r.delete(ctx, toppingsTable, id)
}

func (r *postgresRepo) UpsertTopping(ctx context.Context, label string, priceCents int64) (*domain.ToppingOption, error) {
	o, err := r.upsert(ctx, toppingsTable, label, priceCents)
	if err != nil {
		return nil, err
	}
	t := domain.ToppingOption(*o)
	return &t, nil
}

// table is always one of the package constants, never user input.
func (r *postgresRepo) list(ctx context.Context, table string) ([]option, error) {
	q := `SELECT id::text, label, price_cents FROM ` + table + ` ORDER BY price_cents ASC, label ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []option
	for rows.Next() {
		var o option
		if err := rows.Scan(&o.ID, &o.Label, &o.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) create(ctx context.Context, table, label string, priceCents int64) (*option, error) {
	q := `INSERT INTO ` + table + ` (label, price_cents) VALUES ($1, $2) RETURNING id::text, label, price_cents`
	var o option
	if err := r.pool.QueryRow(ctx, q, label, priceCents).Scan(&o.ID, &o.Label, &o.PriceCents); err != nil {
		return nil, pgutil.MapError(err)
	}
	return &o, nil
}

func (r *postgresRepo) update(ctx context.Context, table string, in option) (*option, error) {
	q := `UPDATE ` + table + ` SET label = $2, price_cents = $3 WHERE id = $1 RETURNING id::text, label, price_cents`
	var o option
	if err := r.pool.QueryRow(ctx, q, in.ID, in.Label, in.PriceCents).Scan(&o.ID, &o.Label, &o.PriceCents); err != nil {
		return nil, pgutil.MapError(err)
	}
	return &o, nil
}

func (r *postgresRepo) delete(ctx context.Context, table, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return pgutil.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) upsert(ctx context.Context, table, label string, priceCents int64) (*option, error) {
	q := `
INSERT INTO ` + table + ` (label, price_cents) VALUES ($1, $2)
ON CONFLICT (label) DO UPDATE SET price_cents = EXCLUDED.price_cents
RETURNING id::text, label, price_cents`
	var o option
	if err := r.pool.QueryRow(ctx, q, label, priceCents).Scan(&o.ID, &o.Label, &o.PriceCents); err != nil {
		return nil, err
	}
	return &o, nil
}
