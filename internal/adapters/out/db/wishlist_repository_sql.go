package db

import (
	"context"
	"database/sql"
	"time"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	wldom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/wishlist"
)

// WishlistRepositorySQL implements wishlist.Repository.
type WishlistRepositorySQL struct {
	DB      *sql.DB
	Dialect dbcommon.Dialect
}

func NewWishlistRepositorySQL(db *sql.DB, d dbcommon.Dialect) *WishlistRepositorySQL {
	return &WishlistRepositorySQL{DB: db, Dialect: d}
}

func (r *WishlistRepositorySQL) ListByUser(ctx context.Context, userID int64) ([]wldom.Item, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`SELECT id, user_id, product_id, created_at FROM wishlist_items WHERE user_id = ? ORDER BY created_at DESC, id DESC`)

	rows, err := run.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []wldom.Item{}
	for rows.Next() {
		var it wldom.Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.CreatedAt = it.CreatedAt.UTC()
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *WishlistRepositorySQL) Add(ctx context.Context, it wldom.Item) (wldom.Item, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now().UTC()
	}
	q := r.Dialect.Rebind(`INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES (?, ?, ?) RETURNING id`)
	if err := run.QueryRowContext(ctx, q, it.UserID, it.ProductID, it.CreatedAt.UTC()).Scan(&it.ID); err != nil {
		if dbcommon.IsUniqueViolation(err) {
			return wldom.Item{}, wldom.ErrAlreadyExists
		}
		return wldom.Item{}, err
	}
	return it, nil
}

func (r *WishlistRepositorySQL) Remove(ctx context.Context, userID, productID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?`), userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return wldom.ErrNotFound
	}
	return nil
}

func (r *WishlistRepositorySQL) DeleteByUser(ctx context.Context, userID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM wishlist_items WHERE user_id = ?`), userID)
	return err
}
