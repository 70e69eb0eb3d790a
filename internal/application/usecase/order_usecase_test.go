package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

func newOrderUC(f *fixture, numbers orderdom.NumberGenerator) *usecase.OrderUsecase {
	if numbers == nil {
		numbers = orderdom.NewRandomNumberGenerator("GH")
	}
	return usecase.NewOrderUsecaseWithClock(f.tx, f.orders, f.products, f.addresses, numbers, f.clock)
}

func line(id int64, qty int) usecase.OrderLine {
	return usecase.OrderLine{ProductID: id, Quantity: qty}
}

func TestCreateOrderFreezesPricesAndDecrementsStock(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()

	u := f.user(t, "ama@example.com")
	choker := f.product(t, "Gold Choker", "Jewelry", "150", 5)
	tote := f.product(t, "Uni Tote", "Accessories", "90", 5)

	o, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID:        u.ID,
		Items:         []usecase.OrderLine{line(tote.ID, 1), line(choker.ID, 1), line(choker.ID, 1)},
		PaymentMethod: "momo",
	})
	require.NoError(t, err)

	assert.NotZero(t, o.ID)
	assert.Regexp(t, `^GH-\d{8}-[0-9A-F]{8}$`, o.OrderNumber)
	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.Equal(t, "GHS", o.Currency)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("390")))
	require.Len(t, o.Items, 2)
	assert.Equal(t, choker.ID, o.Items[0].ProductID)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "Gold Choker", o.Items[0].ProductName)

	assert.Equal(t, 3, f.stock(t, choker.ID))
	assert.Equal(t, 4, f.stock(t, tote.ID))

	choker.Price = decimal.RequireFromString("175")
	_, err = f.products.Update(ctx, choker)
	require.NoError(t, err)

	got, err := uc.GetOrder(ctx, u.ID, o.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("150")))
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("390")))
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	p := f.product(t, "Tumbler", "Lifestyle", "85", 2)

	_, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindInvalidArgument, e.Kind)
	assert.Equal(t, "Order must contain at least one item", e.Message)

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 0)}})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(4242, 1)}})
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
	assert.Equal(t, "Product 4242 not found", e.Message)

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 3)}})
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindInsufficientStock, e.Kind)
	assert.Equal(t, "Insufficient stock for Tumbler. Available: 2", e.Message)
	require.NotNil(t, e.Available)
	assert.Equal(t, 2, *e.Available)

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: 0, Items: []usecase.OrderLine{line(p.ID, 1)}})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	assert.Equal(t, 2, f.stock(t, p.ID))
}

func TestCreateOrderRollsBackEveryLine(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")

	plenty := f.product(t, "Planner", "Digital", "40", 10)
	scarce := f.product(t, "Hoops", "Jewelry", "95", 1)

	_, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{
		UserID: u.ID,
		Items:  []usecase.OrderLine{line(plenty.ID, 3), line(scarce.ID, 2)},
	})
	require.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	assert.Equal(t, 10, f.stock(t, plenty.ID))
	assert.Equal(t, 1, f.stock(t, scarce.ID))
	list, err := uc.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrderRequiresOwnedShippingAddress(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()

	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	p := f.product(t, "Bracelet Set", "Jewelry", "75", 5)

	a, err := sadom.New(owner.ID, "Home", "Ama", "020", "12 Oxford St", "Accra", "Greater Accra", "", "", true, f.clock.Now())
	require.NoError(t, err)
	a, err = f.addresses.Create(ctx, a)
	require.NoError(t, err)

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: other.ID, Items: []usecase.OrderLine{line(p.ID, 1)}, ShippingAddressID: &a.ID})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, 5, f.stock(t, p.ID))

	o, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: owner.ID, Items: []usecase.OrderLine{line(p.ID, 1)}, ShippingAddressID: &a.ID})
	require.NoError(t, err)
	require.NotNil(t, o.ShippingAddressID)
	assert.Equal(t, a.ID, *o.ShippingAddressID)
}

func TestCreateOrderConcurrentLastUnit(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()

	buyers := []int64{f.user(t, "a@example.com").ID, f.user(t, "b@example.com").ID}
	p := f.product(t, "Last Choker", "Jewelry", "150", 1)

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, uid := range buyers {
		wg.Add(1)
		go func(i int, uid int64) {
			defer wg.Done()
			_, errs[i] = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: uid, Items: []usecase.OrderLine{line(p.ID, 1)}})
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
	assert.Equal(t, 0, f.stock(t, p.ID))
}

func TestCreateOrderRetriesNumberCollisionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	p := f.product(t, "Tote", "Accessories", "90", 10)

	numbers := &scriptedNumbers{seq: []string{"GH-20261014-AAAAAAAA", "GH-20261014-AAAAAAAA", "GH-20261014-BBBBBBBB"}}
	uc := newOrderUC(f, numbers)

	first, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 1)}})
	require.NoError(t, err)
	assert.Equal(t, "GH-20261014-AAAAAAAA", first.OrderNumber)

	second, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 2)}})
	require.NoError(t, err)
	assert.Equal(t, "GH-20261014-BBBBBBBB", second.OrderNumber)
	assert.Equal(t, 7, f.stock(t, p.ID))
}

func TestCreateOrderSecondCollisionIsUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	p := f.product(t, "Tote", "Accessories", "90", 10)

	uc := newOrderUC(f, &scriptedNumbers{seq: []string{"GH-20261014-CCCCCCCC"}})

	_, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 1)}})
	require.NoError(t, err)

	_, err = uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 4)}})
	assert.True(t, apperr.IsKind(err, apperr.KindUnavailable))
	assert.Equal(t, 9, f.stock(t, p.ID))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	stranger := f.user(t, "x@example.com")
	p := f.product(t, "Pearl Drops", "Jewelry", "55", 6)

	o, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 4)}})
	require.NoError(t, err)
	assert.Equal(t, 2, f.stock(t, p.ID))

	_, err = uc.CancelOrder(ctx, stranger.ID, o.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	f.clock.Advance(time.Minute)
	cancelled, err := uc.CancelOrder(ctx, u.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusCancelled, cancelled.Status)
	assert.Equal(t, 6, f.stock(t, p.ID))

	stored, err := uc.GetOrder(ctx, u.ID, o.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, f.clock.Now(), stored.UpdatedAt, time.Second)
	assert.True(t, stored.UpdatedAt.After(o.UpdatedAt))

	_, err = uc.CancelOrder(ctx, u.ID, o.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	assert.Equal(t, 6, f.stock(t, p.ID))
}

func TestUpdateStatusOnlyAllowsCancel(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	p := f.product(t, "Sleeve", "Accessories", "65", 3)

	o, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 1)}})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, u.ID, o.ID, " ")
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Status is required", e.Message)

	_, err = uc.UpdateStatus(ctx, u.ID, o.ID, "shipped")
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindInvalidState, e.Kind)
	assert.Equal(t, "Cannot update order status", e.Message)

	_, err = uc.UpdateStatus(ctx, u.ID, 9999, "shipped")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	got, err := uc.UpdateStatus(ctx, u.ID, o.ID, "Cancelled")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusCancelled, got.Status)

	_, err = uc.UpdateStatus(ctx, u.ID, o.ID, "cancelled")
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Cannot update order status", e.Message)
}

func TestTrackStatsAndList(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	other := f.user(t, "other@example.com")
	p := f.product(t, "Bottle", "Lifestyle", "50", 10)

	first, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 1)}})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	second, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 2)}})
	require.NoError(t, err)
	_, err = uc.CancelOrder(ctx, u.ID, first.ID)
	require.NoError(t, err)

	tr, err := uc.TrackByNumber(ctx, second.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, second.OrderNumber, tr.OrderNumber)
	assert.Equal(t, orderdom.StatusPending, tr.Status)

	_, err = uc.TrackByNumber(ctx, "GH-00000000-DEADBEEF")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	list, err := uc.ListOrders(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	st, err := uc.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalOrders)
	assert.Equal(t, "150.00", st.TotalSpent)
	assert.Equal(t, 1, st.StatusBreakdown[orderdom.StatusPending])
	assert.Equal(t, 1, st.StatusBreakdown[orderdom.StatusCancelled])

	_, err = uc.GetOrder(ctx, other.ID, second.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	empty, err := uc.Stats(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalOrders)
	assert.Equal(t, "0.00", empty.TotalSpent)
}

func TestTrackByNumberWithLowercasePrefix(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, orderdom.NewRandomNumberGenerator("shop"))
	ctx := context.Background()
	u := f.user(t, "ama@example.com")
	p := f.product(t, "Anklet", "Jewelry", "40", 2)

	o, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 1)}})
	require.NoError(t, err)
	assert.Regexp(t, `^SHOP-\d{8}-[0-9A-F]{8}$`, o.OrderNumber)

	for _, typed := range []string{o.OrderNumber, strings.ToLower(o.OrderNumber), "  " + o.OrderNumber + " "} {
		tr, err := uc.TrackByNumber(ctx, typed)
		require.NoError(t, err, typed)
		assert.Equal(t, o.OrderNumber, tr.OrderNumber)
	}
}

func TestCreateOrderForDeletedUserIsUnauthenticated(t *testing.T) {
	f := newFixture(t)
	uc := newOrderUC(f, nil)
	ctx := context.Background()
	u := f.user(t, "gone@example.com")
	p := f.product(t, "Scarf", "Clothing", "25", 3)
	require.NoError(t, f.users.Delete(ctx, u.ID))

	_, err := uc.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, Items: []usecase.OrderLine{line(p.ID, 2)}})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated), "got %v", err)
	assert.Equal(t, 3, f.stock(t, p.ID))
}
