package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
)

// ProductRepositorySQL implements product.Repository on Postgres or SQLite.
type ProductRepositorySQL struct {
	DB      *sql.DB
	Dialect dbcommon.Dialect
}

func NewProductRepositorySQL(db *sql.DB, d dbcommon.Dialect) *ProductRepositorySQL {
	return &ProductRepositorySQL{DB: db, Dialect: d}
}

const productColumns = `id, name, category, price, image, description, tags, stock, is_active, created_at, updated_at`

// ========================
// Queries
// ========================

func (r *ProductRepositorySQL) GetByID(ctx context.Context, id int64) (productdom.Product, error) {
	return r.get(ctx, id, "")
}

func (r *ProductRepositorySQL) GetForUpdate(ctx context.Context, id int64) (productdom.Product, error) {
	return r.get(ctx, id, r.Dialect.ForUpdate())
}

func (r *ProductRepositorySQL) get(ctx context.Context, id int64, suffix string) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?` + suffix)

	p, err := scanProduct(run.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositorySQL) GetMany(ctx context.Context, ids []int64) (map[int64]productdom.Product, error) {
	out := map[int64]productdom.Product{}
	if len(ids) == 0 {
		return out, nil
	}

	run := dbcommon.GetRunner(ctx, r.DB)
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	q := r.Dialect.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id IN (` + dbcommon.Placeholders(len(ids)) + `)`)

	rows, err := run.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProductRepositorySQL) List(ctx context.Context, f productdom.Filter, s productdom.Sort, p productdom.Page) ([]productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	where, args := r.buildWhere(f)
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	q := `SELECT ` + productColumns + ` FROM products` + whereSQL + buildProductOrderBy(s)
	if p.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, p.Limit)
	}

	rows, err := run.QueryContext(ctx, r.Dialect.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []productdom.Product{}
	for rows.Next() {
		prod, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, prod)
	}
	return out, rows.Err()
}

func (r *ProductRepositorySQL) Categories(ctx context.Context) ([]string, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT DISTINCT category FROM products WHERE is_active = TRUE ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepositorySQL) Count(ctx context.Context) (int, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	var n int
	if err := run.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ========================
// Commands
// ========================

func (r *ProductRepositorySQL) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	q := r.Dialect.Rebind(`
INSERT INTO products (name, category, price, image, description, tags, stock, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := run.QueryRowContext(ctx, q,
		p.Name, p.Category, p.Price.StringFixed(2), p.Image, p.Description,
		productdom.JoinTags(p.Tags), p.Stock, p.Active, p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	).Scan(&p.ID)
	if err != nil {
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositorySQL) Update(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	p.UpdatedAt = time.Now().UTC()

	q := r.Dialect.Rebind(`
UPDATE products
SET name = ?, category = ?, price = ?, image = ?, description = ?, tags = ?, stock = ?, is_active = ?, updated_at = ?
WHERE id = ?`)
	res, err := run.ExecContext(ctx, q,
		p.Name, p.Category, p.Price.StringFixed(2), p.Image, p.Description,
		productdom.JoinTags(p.Tags), p.Stock, p.Active, p.UpdatedAt, p.ID,
	)
	if err != nil {
		if dbcommon.IsCheckViolation(err) {
			return productdom.Product{}, productdom.ErrInvalid
		}
		return productdom.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepositorySQL) DecrementStock(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product_repository_sql: decrement qty must be positive (got %d)", qty)
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`)

	res, err := run.ExecContext(ctx, q, qty, time.Now().UTC(), id, qty)
	if err != nil {
		if dbcommon.IsCheckViolation(err) {
			return productdom.ErrInsufficientStock
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return productdom.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepositorySQL) IncrementStock(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("product_repository_sql: increment qty must be positive (got %d)", qty)
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	q := r.Dialect.Rebind(`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`)

	res, err := run.ExecContext(ctx, q, qty, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return productdom.ErrNotFound
	}
	return nil
}

// ========================
// Helpers
// ========================

func (r *ProductRepositorySQL) buildWhere(f productdom.Filter) ([]string, []any) {
	where := []string{}
	args := []any{}

	if f.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		where = append(where, "category = ?")
		args = append(args, c)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := r.Dialect.ILike()
		pattern := "%" + escapeLike(s) + "%"
		where = append(where, fmt.Sprintf(
			"(name %[1]s ? ESCAPE '\\' OR description %[1]s ? ESCAPE '\\' OR tags %[1]s ? ESCAPE '\\' OR category %[1]s ? ESCAPE '\\')", like))
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if f.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, f.MinPrice.StringFixed(2))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, f.MaxPrice.StringFixed(2))
	}
	if f.ExcludeID > 0 {
		where = append(where, "id <> ?")
		args = append(args, f.ExcludeID)
	}
	return where, args
}

func buildProductOrderBy(s productdom.Sort) string {
	col := strings.TrimSpace(s.Column)
	switch col {
	case productdom.SortByPrice, productdom.SortByName, productdom.SortByID:
	default:
		col = productdom.SortByID
	}
	dir := "ASC"
	if s.Order == productdom.SortDesc {
		dir = "DESC"
	}
	if col == productdom.SortByID {
		return " ORDER BY id " + dir
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		p    productdom.Product
		tags string
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description,
		&tags, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return productdom.Product{}, err
	}
	p.Tags = productdom.SplitTags(tags)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
