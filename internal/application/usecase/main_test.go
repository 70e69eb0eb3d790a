package usecase_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	sqlrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db"
	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/dbtest"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/memory"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fixedClock {
	return &fixedClock{t: time.Now().UTC().Truncate(time.Second)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// scriptedNumbers hands out numbers in order and repeats the last one.
type scriptedNumbers struct {
	mu  sync.Mutex
	seq []string
	i   int
}

func (s *scriptedNumbers) Next(time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.seq[len(s.seq)-1]
	if s.i < len(s.seq) {
		n = s.seq[s.i]
	}
	s.i++
	return n, nil
}

type fixture struct {
	db        *sql.DB
	tx        *dbcommon.TxManager
	products  *sqlrepo.ProductRepositorySQL
	orders    *sqlrepo.OrderRepositorySQL
	users     *sqlrepo.UserRepositorySQL
	addresses *sqlrepo.ShippingAddressRepositorySQL
	wishlist  *sqlrepo.WishlistRepositorySQL
	carts     *memory.CartRepositoryMem
	clock     *fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := dbtest.NewSQLite(t)
	d := dbcommon.SQLite
	return &fixture{
		db:        conn,
		tx:        dbcommon.NewTxManager(conn, 5*time.Second),
		products:  sqlrepo.NewProductRepositorySQL(conn, d),
		orders:    sqlrepo.NewOrderRepositorySQL(conn, d),
		users:     sqlrepo.NewUserRepositorySQL(conn, d),
		addresses: sqlrepo.NewShippingAddressRepositorySQL(conn, d),
		wishlist:  sqlrepo.NewWishlistRepositorySQL(conn, d),
		carts:     memory.NewCartRepositoryMem(),
		clock:     newClock(),
	}
}

func (f *fixture) product(t *testing.T, name, category, price string, stock int) productdom.Product {
	t.Helper()
	p, err := productdom.New(name, category, decimal.RequireFromString(price), "", name+" description", []string{"tag"}, stock, f.clock.Now())
	require.NoError(t, err)
	p, err = f.products.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func (f *fixture) user(t *testing.T, email string) userdom.User {
	t.Helper()
	u, err := userdom.New("Ama", email, "x", f.clock.Now())
	require.NoError(t, err)
	u, err = f.users.Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}
