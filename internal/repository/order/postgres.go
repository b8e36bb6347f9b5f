package order

import (
	"context"
	"fmt"
	"time"

	"teapos/internal/domain"
	"teapos/internal/logging"
	"teapos/internal/repository/pgutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Entry
}

func NewPostgres(pool *pgxpool.Pool, logger *logrus.Entry) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger).WithField("repo", "orders")}
}

const orderColumns = `id::text, subtotal_cents, tax_cents, total_cents, COALESCE(tax_rate::text, ''), payment_method, payment_status, status, order_type, cash_received_cents, change_cents, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var rate string
	if err := row.Scan(&o.ID, &o.SubtotalCents, &o.TaxCents, &o.TotalCents, &rate, &o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.Type, &o.CashReceivedCents, &o.ChangeCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, pgutil.MapError(err)
	}
	if rate != "" {
		r, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("%w: order %s tax rate %q", domain.ErrData, o.ID, rate)
		}
		o.TaxRate = r
	}
	return &o, nil
}

func (r *postgresRepo) Create(ctx context.Context, o *domain.Order, changedBy string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (id, subtotal_cents, tax_cents, total_cents, tax_rate, payment_method, payment_status, status, order_type, cash_received_cents, change_cents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12, $13)
`
	if _, err := tx.Exec(ctx, insertOrder, o.ID, o.SubtotalCents, o.TaxCents, o.TotalCents, o.TaxRate.String(), o.PaymentMethod, o.PaymentStatus, o.Status, o.Type, o.CashReceivedCents, o.ChangeCents, o.CreatedAt, o.UpdatedAt); err != nil {
		return pgutil.MapError(err)
	}

	const insertLine = `
INSERT INTO order_lines (order_id, position, menu_item_id, name, base_price_cents, size, size_price_cents, sugar, ice, toppings, topping_price_cents, quantity, unit_price_cents, price_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`
	batch := &pgx.Batch{}
	for i, l := range o.Lines {
		toppings := l.Toppings
		if toppings == nil {
			toppings = []string{}
		}
		prices := l.ToppingPriceCents
		if prices == nil {
			prices = []int64{}
		}
		batch.Queue(insertLine, o.ID, i, l.MenuItemID, l.Name, l.BasePriceCents, l.Size, l.SizePriceCents, l.Sugar, l.Ice, toppings, prices, l.Quantity, l.UnitPriceCents, l.PriceCents)
	}
	if p := o.Payment; p != nil {
		batch.Queue(`
INSERT INTO payment_transactions (id, order_id, amount_cents, method, status, reference, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, p.ID, o.ID, p.AmountCents, p.Method, p.Status, p.Reference, p.CreatedAt)
	}
	batch.Queue(`INSERT INTO order_status_log (order_id, status, changed_by, changed_at) VALUES ($1, $2, $3, $4)`, o.ID, o.Status, changedBy, o.CreatedAt)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert order rows: %w", pgutil.MapError(err))
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{"order_id": o.ID, "lines": len(o.Lines)}).Debug("order created")
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	orders := []domain.Order{*o}
	if err := r.attach(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE ($1 = '' OR status = $1)
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.pool.Query(ctx, q, string(f.Status), limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// attach loads lines and the latest payment transaction for orders in place.
func (r *postgresRepo) attach(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const linesQuery = `
SELECT order_id::text, menu_item_id, name, base_price_cents, size, size_price_cents, sugar, ice, toppings, topping_price_cents, quantity, unit_price_cents, price_cents
FROM order_lines
WHERE order_id = ANY($1::text[]::uuid[])
ORDER BY order_id, position
`
	rows, err := r.pool.Query(ctx, linesQuery, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var orderID string
		var l domain.LineItem
		if err := rows.Scan(&orderID, &l.MenuItemID, &l.Name, &l.BasePriceCents, &l.Size, &l.SizePriceCents, &l.Sugar, &l.Ice, &l.Toppings, &l.ToppingPriceCents, &l.Quantity, &l.UnitPriceCents, &l.PriceCents); err != nil {
			rows.Close()
			return err
		}
		i := index[orderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const paymentsQuery = `
SELECT DISTINCT ON (order_id) id::text, order_id::text, amount_cents, method, status, reference, created_at
FROM payment_transactions
WHERE order_id = ANY($1::text[]::uuid[])
ORDER BY order_id, created_at DESC
`
	rows, err = r.pool.Query(ctx, paymentsQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Transaction
		if err := rows.Scan(&p.ID, &p.OrderID, &p.AmountCents, &p.Method, &p.Status, &p.Reference, &p.CreatedAt); err != nil {
			return err
		}
		orders[index[p.OrderID]].Payment = &p
	}
	return rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, changedBy string, at time.Time) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`, id, from, to, at)
	if err != nil {
		return pgutil.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, tx, id, fmt.Errorf("%w: order %s is no longer %s", domain.ErrInvalidStatusTransition, id, from))
	}
	if _, err := tx.Exec(ctx, `INSERT INTO order_status_log (order_id, status, changed_by, changed_at) VALUES ($1, $2, $3, $4)`, id, to, changedBy, at); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus, at time.Time) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE orders SET payment_status = $3, updated_at = $4 WHERE id = $1 AND payment_status = $2`, id, from, to, at)
	if err != nil {
		return pgutil.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOr(ctx, tx, id, fmt.Errorf("%w: payment of order %s is no longer %s", domain.ErrInvalidStatusTransition, id, from))
	}
	if _, err := tx.Exec(ctx, `UPDATE payment_transactions SET status = $3 WHERE order_id = $1 AND status = $2`, id, from, to); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) missingOr(ctx context.Context, tx pgx.Tx, id string, conflict error) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return pgutil.MapError(err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return conflict
}

func (r *postgresRepo) History(ctx context.Context, id string) ([]domain.StatusLog, error) {
	rows, err := r.pool.Query(ctx, `
SELECT order_id::text, status, changed_by, changed_at
FROM order_status_log
WHERE order_id = $1
ORDER BY id ASC
`, id)
	if err != nil {
		return nil, pgutil.MapError(err)
	}
	defer rows.Close()

	var result []domain.StatusLog
	for rows.Next() {
		var l domain.StatusLog
		if err := rows.Scan(&l.OrderID, &l.Status, &l.ChangedBy, &l.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Summary(ctx context.Context, from, to time.Time, topN int) (*domain.SalesSummary, error) {
	out := &domain.SalesSummary{
		From:     from,
		To:       to,
		ByStatus: map[domain.OrderStatus]int{},
		ByMethod: map[domain.PaymentMethod]int64{},
	}

	rows, err := r.pool.Query(ctx, `
SELECT status, payment_method, COUNT(*), COALESCE(SUM(total_cents), 0), COALESCE(SUM(tax_cents), 0)
FROM orders
WHERE created_at >= $1 AND created_at < $2
GROUP BY status, payment_method
`, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			status       domain.OrderStatus
			method       domain.PaymentMethod
			count        int
			total, taxes int64
		)
		if err := rows.Scan(&status, &method, &count, &total, &taxes); err != nil {
			rows.Close()
			return nil, err
		}
		out.OrderCount += count
		out.ByStatus[status] += count
		if status == domain.StatusCancelled {
			continue
		}
		out.RevenueCents += total
		out.TaxCents += taxes
		out.ByMethod[method] += total
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if topN <= 0 {
		topN = 5
	}
	rows, err = r.pool.Query(ctx, `
SELECT l.name, SUM(l.quantity)::int, SUM(l.price_cents)::bigint
FROM order_lines l
JOIN orders o ON o.id = l.order_id
WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'cancelled'
GROUP BY l.name
ORDER BY 2 DESC, 1 ASC
LIMIT $3
`, from, to, topN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.ItemSales
		if err := rows.Scan(&item.Name, &item.Quantity, &item.RevenueCents); err != nil {
			return nil, err
		}
		out.TopItems = append(out.TopItems, item)
	}
	return out, rows.Err()
}
