package db

import (
	"context"
	"database/sql"
	"errors"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
)

// ShippingAddressRepositorySQL implements shippingAddress.Repository.
type ShippingAddressRepositorySQL struct {
	DB      *sql.DB
	Dialect dbcommon.Dialect
}

func NewShippingAddressRepositorySQL(db *sql.DB, d dbcommon.Dialect) *ShippingAddressRepositorySQL {
	return &ShippingAddressRepositorySQL{DB: db, Dialect: d}
}

const addressColumns = `id, user_id, label, name, phone, street, city, region, postal_code, country, is_default, created_at, updated_at`

func (r *ShippingAddressRepositorySQL) GetByIDForUser(ctx context.Context, id, userID int64) (sadom.ShippingAddress, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE id = ? AND user_id = ?`)

	a, err := scanAddress(run.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sadom.ShippingAddress{}, sadom.ErrNotFound
		}
		return sadom.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressRepositorySQL) ListByUser(ctx context.Context, userID int64) ([]sadom.ShippingAddress, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`SELECT ` + addressColumns + ` FROM addresses WHERE user_id = ? ORDER BY is_default DESC, id ASC`)

	rows, err := run.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []sadom.ShippingAddress{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ShippingAddressRepositorySQL) CountByUser(ctx context.Context, userID int64) (int, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	var n int
	err := run.QueryRowContext(ctx, r.Dialect.Rebind(`SELECT COUNT(*) FROM addresses WHERE user_id = ?`), userID).Scan(&n)
	return n, err
}

func (r *ShippingAddressRepositorySQL) Create(ctx context.Context, a sadom.ShippingAddress) (sadom.ShippingAddress, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`
INSERT INTO addresses (user_id, label, name, phone, street, city, region, postal_code, country, is_default, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := run.QueryRowContext(ctx, q,
		a.UserID, a.Label, a.Name, a.Phone, a.Street, a.City, a.Region, a.PostalCode, a.Country, a.IsDefault,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	).Scan(&a.ID)
	if err != nil {
		return sadom.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressRepositorySQL) Save(ctx context.Context, a sadom.ShippingAddress) (sadom.ShippingAddress, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`
UPDATE addresses
SET label = ?, name = ?, phone = ?, street = ?, city = ?, region = ?, postal_code = ?, country = ?, is_default = ?, updated_at = ?
WHERE id = ? AND user_id = ?`)
	res, err := run.ExecContext(ctx, q,
		a.Label, a.Name, a.Phone, a.Street, a.City, a.Region, a.PostalCode, a.Country, a.IsDefault, a.UpdatedAt.UTC(),
		a.ID, a.UserID,
	)
	if err != nil {
		return sadom.ShippingAddress{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sadom.ShippingAddress{}, sadom.ErrNotFound
	}
	return a, nil
}

func (r *ShippingAddressRepositorySQL) ClearDefault(ctx context.Context, userID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, r.Dialect.Rebind(`UPDATE addresses SET is_default = FALSE WHERE user_id = ? AND is_default = TRUE`), userID)
	return err
}

func (r *ShippingAddressRepositorySQL) Delete(ctx context.Context, id, userID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	res, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM addresses WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sadom.ErrNotFound
	}
	return nil
}

func (r *ShippingAddressRepositorySQL) DeleteByUser(ctx context.Context, userID int64) error {
	run := dbcommon.GetRunner(ctx, r.DB)
	_, err := run.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM addresses WHERE user_id = ?`), userID)
	return err
}

func scanAddress(s dbcommon.RowScanner) (sadom.ShippingAddress, error) {
	var a sadom.ShippingAddress
	if err := s.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Name, &a.Phone, &a.Street, &a.City, &a.Region,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return sadom.ShippingAddress{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
