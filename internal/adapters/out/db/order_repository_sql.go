package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
)

// OrderRepositorySQL implements order.Repository on Postgres or SQLite.
type OrderRepositorySQL struct {
	DB      *sql.DB
	Dialect dbcommon.Dialect
}

func NewOrderRepositorySQL(db *sql.DB, d dbcommon.Dialect) *OrderRepositorySQL {
	return &OrderRepositorySQL{DB: db, Dialect: d}
}

const orderColumns = `id, user_id, order_number, status, total_amount, currency, shipping_address_id,
  payment_method, payment_status, tracking_number, notes, created_at, updated_at`

// ========================
// Queries
// ========================

func (r *OrderRepositorySQL) GetByID(ctx context.Context, id int64) (orderdom.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
}

func (r *OrderRepositorySQL) GetByNumber(ctx context.Context, number string) (orderdom.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, number)
}

func (r *OrderRepositorySQL) getOne(ctx context.Context, q string, arg any) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	o, err := scanOrder(run.QueryRowContext(ctx, r.Dialect.Rebind(q), arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	items, err := r.itemsFor(ctx, []int64{o.ID})
	if err != nil {
		return orderdom.Order{}, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *OrderRepositorySQL) ListByUser(ctx context.Context, userID int64) ([]orderdom.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (r *OrderRepositorySQL) ListPendingByUser(ctx context.Context, userID int64) ([]orderdom.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? AND status = ? ORDER BY id`+r.Dialect.ForUpdate(),
		userID, string(orderdom.StatusPending))
}

func (r *OrderRepositorySQL) list(ctx context.Context, q string, args ...any) ([]orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	rows, err := run.QueryContext(ctx, r.Dialect.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	out := []orderdom.Order{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// close before the next query: sqlite runs on a single connection
	if err := rows.Close(); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *OrderRepositorySQL) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]orderdom.Item, error) {
	out := map[int64][]orderdom.Item{}
	if len(orderIDs) == 0 {
		return out, nil
	}

	run := dbcommon.GetRunner(ctx, r.DB)
	args := make([]any, 0, len(orderIDs))
	for _, id := range orderIDs {
		args = append(args, id)
	}
	q := r.Dialect.Rebind(`
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, COALESCE(p.name, ''), COALESCE(p.image, '')
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id IN (` + dbcommon.Placeholders(len(orderIDs)) + `)
ORDER BY oi.order_id, oi.id`)

	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it orderdom.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.ProductName, &it.ProductImage); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *OrderRepositorySQL) Stats(ctx context.Context, userID int64) (orderdom.Stats, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	stats := orderdom.Stats{TotalSpent: "0.00", StatusBreakdown: map[orderdom.Status]int{}}

	q := r.Dialect.Rebind(`SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders WHERE user_id = ? GROUP BY status`)
	rows, err := run.QueryContext(ctx, q, userID)
	if err != nil {
		return orderdom.Stats{}, err
	}
	defer rows.Close()

	spent := decimal.Zero
	for rows.Next() {
		var (
			status string
			n      int
			sum    decimal.Decimal
		)
		if err := rows.Scan(&status, &n, &sum); err != nil {
			return orderdom.Stats{}, err
		}
		stats.TotalOrders += n
		stats.StatusBreakdown[orderdom.Status(status)] = n
		spent = spent.Add(sum)
	}
	if err := rows.Err(); err != nil {
		return orderdom.Stats{}, err
	}
	stats.TotalSpent = spent.StringFixed(2)
	return stats, nil
}

// ========================
// Commands
// ========================

func (r *OrderRepositorySQL) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	var shipping any
	if o.ShippingAddressID != nil {
		shipping = *o.ShippingAddressID
	}

	q := r.Dialect.Rebind(`
INSERT INTO orders (
  user_id, order_number, status, total_amount, currency, shipping_address_id,
  payment_method, payment_status, tracking_number, notes, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := run.QueryRowContext(ctx, q,
		o.UserID, o.OrderNumber, string(o.Status), o.TotalAmount.StringFixed(2), o.Currency, shipping,
		o.PaymentMethod, o.PaymentStatus, o.TrackingNumber, o.Notes, o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	).Scan(&o.ID)
	if err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return orderdom.Order{}, orderdom.ErrConflict
		}
		// The shipping address is checked under the same tx, so user_id is the failing key.
		if dbcommon.IsForeignKeyViolation(err) {
			return orderdom.Order{}, orderdom.ErrUnknownUser
		}
		return orderdom.Order{}, err
	}

	itemQ := r.Dialect.Rebind(`INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?) RETURNING id`)
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		if err := run.QueryRowContext(ctx, itemQ, o.ID, it.ProductID, it.Quantity, it.Price.StringFixed(2)).Scan(&it.ID); err != nil {
			return orderdom.Order{}, err
		}
	}
	return o, nil
}

func (r *OrderRepositorySQL) TransitionStatus(ctx context.Context, id int64, from, next orderdom.Status, at time.Time) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`)

	res, err := run.ExecContext(ctx, q, string(next), at.UTC(), id, string(from))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = run.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT 1 FROM orders WHERE id = ?`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return orderdom.ErrNotFound
	}
	if err != nil {
		return err
	}
	return orderdom.ErrConflict
}

func (r *OrderRepositorySQL) DeleteByUser(ctx context.Context, userID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	if _, err := run.ExecContext(ctx, r.Dialect.Rebind(
		`DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)`), userID); err != nil {
		return err
	}
	_, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM orders WHERE user_id = ?`), userID)
	return err
}

// ========================
// Helpers
// ========================

func scanOrder(s dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		o        orderdom.Order
		status   string
		shipping sql.NullInt64
	)
	if err := s.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &status, &o.TotalAmount, &o.Currency, &shipping,
		&o.PaymentMethod, &o.PaymentStatus, &o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return orderdom.Order{}, err
	}
	o.Status = orderdom.Status(status)
	if shipping.Valid {
		v := shipping.Int64
		o.ShippingAddressID = &v
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}
