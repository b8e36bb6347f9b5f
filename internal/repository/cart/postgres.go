package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teapos/internal/domain"
	"teapos/internal/repository/pgutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Save(ctx context.Context, key string, lines []domain.LineItem) error {
	const q = `
INSERT INTO cart_snapshots (key, lines, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET lines = EXCLUDED.lines,
    updated_at = EXCLUDED.updated_at
`
	if lines == nil {
		lines = []domain.LineItem{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, q, key, data); err != nil {
		return pgutil.MapError(err)
	}
	return nil
}

func (r *postgresRepo) Load(ctx context.Context, key string) ([]domain.LineItem, error) {
	const q = `SELECT lines FROM cart_snapshots WHERE key = $1`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, pgutil.MapError(err)
	}
	var lines []domain.LineItem
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("%w: cart snapshot %s: %v", domain.ErrData, key, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return lines, nil
}

func (r *postgresRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE key = $1`, key); err != nil {
		return pgutil.MapError(err)
	}
	return nil
}

func (r *postgresRepo) Purge(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE updated_at < $1`, before)
	if err != nil {
		return 0, pgutil.MapError(err)
	}
	return tag.RowsAffected(), nil
}
