package db_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db"
	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/dbtest"
	"github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
	wldom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/wishlist"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// repoSuite runs the same checks against any migrated database.
func repoSuite(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	t.Run("stock movements", func(t *testing.T) { testStockMovements(t, conn, d) })
	t.Run("users", func(t *testing.T) { testUsers(t, conn, d) })
	t.Run("orders", func(t *testing.T) { testOrders(t, conn, d) })
	t.Run("wishlist", func(t *testing.T) { testWishlist(t, conn, d) })
	t.Run("concurrent last unit checkout", func(t *testing.T) { testConcurrentCheckout(t, conn, d) })
}

func TestRepositoriesSQLite(t *testing.T) {
	repoSuite(t, dbtest.NewSQLite(t), dbcommon.SQLite)
}

func newProduct(t *testing.T, repo *sqlrepo.ProductRepositorySQL, name string, stock int) productdom.Product {
	t.Helper()
	p, err := productdom.New(name, "Jewelry", decimal.RequireFromString("89.99"), "", "", []string{"gold", "gold", " necklace "}, stock, time.Now())
	require.NoError(t, err)
	p, err = repo.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func newUser(t *testing.T, repo *sqlrepo.UserRepositorySQL, email string) userdom.User {
	t.Helper()
	u, err := userdom.New("Ama", email, "hash", time.Now())
	require.NoError(t, err)
	u, err = repo.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func testStockMovements(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	ctx := context.Background()
	repo := sqlrepo.NewProductRepositorySQL(conn, d)
	p := newProduct(t, repo, "Stock Choker", 3)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("89.99")))
	assert.Equal(t, []string{"gold", "necklace"}, got.Tags)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 2), productdom.ErrInsufficientStock)
	require.NoError(t, repo.IncrementStock(ctx, p.ID, 4))
	assert.ErrorIs(t, repo.IncrementStock(ctx, 987654, 1), productdom.ErrNotFound)

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	got.Stock = -1
	_, err = repo.Update(ctx, got)
	assert.ErrorIs(t, err, productdom.ErrInvalid)

	many, err := repo.GetMany(ctx, []int64{p.ID, 987654})
	require.NoError(t, err)
	assert.Len(t, many, 1)

	_, err = repo.GetByID(ctx, 987654)
	assert.ErrorIs(t, err, productdom.ErrNotFound)
}

func testUsers(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	ctx := context.Background()
	repo := sqlrepo.NewUserRepositorySQL(conn, d)
	u := newUser(t, repo, "users@example.com")

	_, err := repo.Create(ctx, userdom.User{Name: "Dup", Email: "users@example.com", PasswordHash: "h", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, userdom.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "USERS@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Nil(t, got.Birthday)

	bday := time.Date(1999, 4, 12, 0, 0, 0, 0, time.UTC)
	got.Birthday = &bday
	got.Phone = "024"
	_, err = repo.Save(ctx, got)
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, "1999-04-12", got.Birthday.Format(userdom.BirthdayLayout))
	assert.Equal(t, "024", got.Phone)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, userdom.ErrNotFound)
}

func testOrders(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	ctx := context.Background()
	products := sqlrepo.NewProductRepositorySQL(conn, d)
	users := sqlrepo.NewUserRepositorySQL(conn, d)
	orders := sqlrepo.NewOrderRepositorySQL(conn, d)

	u := newUser(t, users, "orders@example.com")
	p := newProduct(t, products, "Order Choker", 10)

	items := []orderdom.Item{{ProductID: p.ID, Quantity: 2, Price: p.Price}}
	o, err := orderdom.New(u.ID, "GH-20260101-00000001", items, "", nil, "momo", "", time.Now())
	require.NoError(t, err)
	o, err = orders.Create(ctx, o)
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.NotZero(t, o.Items[0].ID)

	_, err = orders.Create(ctx, o)
	assert.ErrorIs(t, err, orderdom.ErrConflict)

	got, err := orders.GetByNumber(ctx, "GH-20260101-00000001")
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("179.98")))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Order Choker", got.Items[0].ProductName)

	pending, err := orders.ListPendingByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	cancelledAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, orders.TransitionStatus(ctx, o.ID, orderdom.StatusPending, orderdom.StatusCancelled, cancelledAt))
	assert.ErrorIs(t, orders.TransitionStatus(ctx, o.ID, orderdom.StatusPending, orderdom.StatusCancelled, cancelledAt), orderdom.ErrConflict)
	assert.ErrorIs(t, orders.TransitionStatus(ctx, 987654, orderdom.StatusPending, orderdom.StatusCancelled, cancelledAt), orderdom.ErrNotFound)

	got, err = orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusCancelled, got.Status)
	assert.WithinDuration(t, cancelledAt, got.UpdatedAt, time.Second)

	orphan, err := orderdom.New(u.ID+1000, "GH-20260101-00000002", items, "", nil, "momo", "", time.Now())
	require.NoError(t, err)
	_, err = orders.Create(ctx, orphan)
	assert.ErrorIs(t, err, orderdom.ErrUnknownUser)

	stats, err := orders.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, "179.98", stats.TotalSpent)
	assert.Equal(t, 1, stats.StatusBreakdown[orderdom.StatusCancelled])

	require.NoError(t, orders.DeleteByUser(ctx, u.ID))
	_, err = orders.GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, orderdom.ErrNotFound)
}

func testWishlist(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	ctx := context.Background()
	products := sqlrepo.NewProductRepositorySQL(conn, d)
	users := sqlrepo.NewUserRepositorySQL(conn, d)
	repo := sqlrepo.NewWishlistRepositorySQL(conn, d)

	u := newUser(t, users, "wish@example.com")
	p := newProduct(t, products, "Wish Choker", 1)

	it, err := repo.Add(ctx, wldom.Item{UserID: u.ID, ProductID: p.ID, CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NotZero(t, it.ID)

	_, err = repo.Add(ctx, wldom.Item{UserID: u.ID, ProductID: p.ID, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, wldom.ErrAlreadyExists)

	require.NoError(t, repo.Remove(ctx, u.ID, p.ID))
	assert.ErrorIs(t, repo.Remove(ctx, u.ID, p.ID), wldom.ErrNotFound)
}

func TestTxManagerRollsBack(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	repo := sqlrepo.NewProductRepositorySQL(conn, dbcommon.SQLite)
	tx := dbcommon.NewTxManager(conn, time.Second)
	ctx := context.Background()
	p := newProduct(t, repo, "Tx Choker", 5)

	err := tx.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.DecrementStock(ctx, p.ID, 5); err != nil {
			return err
		}
		return orderdom.ErrConflict
	})
	assert.ErrorIs(t, err, orderdom.ErrConflict)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)

	assert.Panics(t, func() {
		_ = tx.WithTx(ctx, func(ctx context.Context) error {
			_ = repo.DecrementStock(ctx, p.ID, 1)
			panic("boom")
		})
	})
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

// testConcurrentCheckout races two buyers for the last unit through real
// transactions; exactly one order may commit.
func testConcurrentCheckout(t *testing.T, conn *sql.DB, d dbcommon.Dialect) {
	ctx := context.Background()
	products := sqlrepo.NewProductRepositorySQL(conn, d)
	users := sqlrepo.NewUserRepositorySQL(conn, d)
	uc := usecase.NewOrderUsecase(
		dbcommon.NewTxManager(conn, 10*time.Second),
		sqlrepo.NewOrderRepositorySQL(conn, d),
		products,
		sqlrepo.NewShippingAddressRepositorySQL(conn, d),
		orderdom.NewRandomNumberGenerator("GH"),
	)

	p := newProduct(t, products, "Last Unit Choker", 1)
	buyers := []int64{
		newUser(t, users, "race-a@example.com").ID,
		newUser(t, users, "race-b@example.com").ID,
	}

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, uid := range buyers {
		wg.Add(1)
		go func(i int, uid int64) {
			defer wg.Done()
			_, errs[i] = uc.CreateOrder(ctx, usecase.CreateOrderInput{
				UserID: uid,
				Items:  []usecase.OrderLine{{ProductID: p.ID, Quantity: 1}},
			})
		}(i, uid)
	}
	wg.Wait()

	ok, short := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperr.IsKind(err, apperr.KindInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, short)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}
