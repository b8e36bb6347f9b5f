package menuitem

import (
	"context"

	"teapos/internal/domain"
	"teapos/internal/logging"
	"teapos/internal/repository/pgutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Entry
}

func NewPostgres(pool *pgxpool.Pool, logger *logrus.Entry) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger).WithField("repo", "menu_items")}
}

const columns = `id::text, name, price_cents, category_id::text, COALESCE(image_url, ''), created_at`

func scan(row pgx.Row) (*domain.MenuItem, error) {
	var m domain.MenuItem
	if err := row.Scan(&m.ID, &m.Name, &m.PriceCents, &m.CategoryID, &m.ImageURL, &m.CreatedAt); err != nil {
		return nil, pgutil.MapError(err)
	}
	return &m, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.MenuItem, error) {
	q := `SELECT ` + columns + `
FROM menu_items
WHERE category_id = $1
ORDER BY created_at ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		r.logger.WithError(err).WithField("category_id", categoryID).Debug("list menu items")
		return nil, pgutil.MapError(err)
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.WithFields(logrus.Fields{"category_id": categoryID, "count": len(result)}).Debug("list menu items")
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	q := `SELECT ` + columns + ` FROM menu_items WHERE id = $1`
	return scan(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	q := `
INSERT INTO menu_items (category_id, name, price_cents, image_url)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, item.CategoryID, item.Name, item.PriceCents, item.ImageURL))
}

func (r *postgresRepo) Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	q := `
UPDATE menu_items
SET category_id = $2, name = $3, price_cents = $4, image_url = NULLIF($5, '')
WHERE id = $1
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, item.ID, item.CategoryID, item.Name, item.PriceCents, item.ImageURL))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return pgutil.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	q := `
INSERT INTO menu_items (category_id, name, price_cents, image_url)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (category_id, name) DO UPDATE
SET price_cents = EXCLUDED.price_cents,
    image_url = COALESCE(EXCLUDED.image_url, menu_items.image_url)
RETURNING ` + columns
	return scan(r.pool.QueryRow(ctx, q, item.CategoryID, item.Name, item.PriceCents, item.ImageURL))
}
