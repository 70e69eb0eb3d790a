// backend/internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	common "github.com/Lanor-Jephthah1/gurlhub/internal/domain/common"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// CreateOrderInput is the checkout request.
type CreateOrderInput struct {
	UserID            int64
	Items             []OrderLine
	ShippingAddressID *int64
	PaymentMethod     string
	Notes             string
	Currency          string
}

// OrderTracking is the public view returned by TrackByNumber.
type OrderTracking struct {
	OrderNumber    string
	Status         orderdom.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TrackingNumber string
}

// OrderUsecase owns checkout and the order lifecycle.
// Every stock movement happens inside the same transaction as the order write.
type OrderUsecase struct {
	tx        common.TxRunner
	orders    orderdom.Repository
	products  productdom.Repository
	addresses sadom.Repository
	numbers   orderdom.NumberGenerator
	images    ImageURLResolver
	clock     Clock
	currency  string
}

func NewOrderUsecase(
	tx common.TxRunner,
	orders orderdom.Repository,
	products productdom.Repository,
	addresses sadom.Repository,
	numbers orderdom.NumberGenerator,
) *OrderUsecase {
	return NewOrderUsecaseWithClock(tx, orders, products, addresses, numbers, nil)
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(
	tx common.TxRunner,
	orders orderdom.Repository,
	products productdom.Repository,
	addresses sadom.Repository,
	numbers orderdom.NumberGenerator,
	clock Clock,
) *OrderUsecase {
	if numbers == nil {
		numbers = orderdom.NewRandomNumberGenerator("")
	}
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		products:  products,
		addresses: addresses,
		numbers:   numbers,
		clock:     clockOrSystem(clock),
		currency:  orderdom.DefaultCurrency,
	}
}

func (uc *OrderUsecase) WithImageResolver(r ImageURLResolver) *OrderUsecase {
	uc.images = r
	return uc
}

// WithDefaultCurrency sets the currency used when a request omits one.
func (uc *OrderUsecase) WithDefaultCurrency(cur string) *OrderUsecase {
	if c := strings.TrimSpace(cur); c != "" {
		uc.currency = c
	}
	return uc
}

// ============================================================
// Checkout
// ============================================================

// CreateOrder validates every line against locked product rows, freezes prices,
// decrements stock and writes the order. Either all of it commits or none of it.
// An order number collision re-runs the whole transaction once.
func (uc *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (orderdom.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.CreateOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", in.UserID), attribute.Int("order.lines", len(in.Items)))

	if in.UserID <= 0 {
		return orderdom.Order{}, apperr.Unauthenticated("Authentication required")
	}
	lines, err := mergeLines(in.Items)
	if err != nil {
		return orderdom.Order{}, err
	}

	var created orderdom.Order
	attempt := func() error {
		return uc.tx.WithTx(ctx, func(txCtx context.Context) error {
			o, err := uc.placeOrder(txCtx, in, lines)
			if err != nil {
				return err
			}
			created = o
			return nil
		})
	}

	err = attempt()
	if errors.Is(err, orderdom.ErrConflict) {
		log.Printf("[order_usecase] order number collision for user=%d, retrying", in.UserID)
		err = attempt()
		if errors.Is(err, orderdom.ErrConflict) {
			err = apperr.Wrap(apperr.KindUnavailable, "Could not allocate an order number, please retry", err)
		}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order failed")
		return orderdom.Order{}, translate("order_usecase", err)
	}

	span.SetAttributes(attribute.String("order.number", created.OrderNumber))
	uc.resolveItemImages(ctx, &created)
	return created, nil
}

// placeOrder runs inside the transaction. ErrConflict is returned untranslated
// so the caller can retry.
func (uc *OrderUsecase) placeOrder(ctx context.Context, in CreateOrderInput, lines []OrderLine) (orderdom.Order, error) {
	if in.ShippingAddressID != nil {
		if _, err := uc.addresses.GetByIDForUser(ctx, *in.ShippingAddressID, in.UserID); err != nil {
			if errors.Is(err, sadom.ErrNotFound) {
				return orderdom.Order{}, apperr.Wrap(apperr.KindNotFound, "Shipping address not found", err)
			}
			return orderdom.Order{}, err
		}
	}

	items := make([]orderdom.Item, 0, len(lines))
	for _, ln := range lines {
		p, err := uc.products.GetForUpdate(ctx, ln.ProductID)
		if err != nil {
			if errors.Is(err, productdom.ErrNotFound) {
				return orderdom.Order{}, apperr.Wrap(apperr.KindNotFound, fmt.Sprintf("Product %d not found", ln.ProductID), err)
			}
			return orderdom.Order{}, err
		}
		if !p.Purchasable() {
			return orderdom.Order{}, apperr.NotFound(fmt.Sprintf("Product %d not found", ln.ProductID))
		}
		if !p.CanFulfil(ln.Quantity) {
			return orderdom.Order{}, insufficientFor(p.Name, p.Stock)
		}

		if err := uc.products.DecrementStock(ctx, p.ID, ln.Quantity); err != nil {
			if errors.Is(err, productdom.ErrInsufficientStock) {
				return orderdom.Order{}, insufficientFor(p.Name, p.Stock)
			}
			return orderdom.Order{}, err
		}

		items = append(items, orderdom.Item{
			ProductID:    p.ID,
			Quantity:     ln.Quantity,
			Price:        p.Price,
			ProductName:  p.Name,
			ProductImage: p.Image,
		})
	}

	now := uc.clock.Now()
	number, err := uc.numbers.Next(now)
	if err != nil {
		return orderdom.Order{}, err
	}

	currency := in.Currency
	if strings.TrimSpace(currency) == "" {
		currency = uc.currency
	}
	o, err := orderdom.New(in.UserID, number, items, currency, in.ShippingAddressID, in.PaymentMethod, in.Notes, now)
	if err != nil {
		return orderdom.Order{}, err
	}

	saved, err := uc.orders.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}
	return saved, nil
}

// ============================================================
// Lifecycle
// ============================================================

// CancelOrder cancels a pending order owned by userID and returns its stock.
func (uc *OrderUsecase) CancelOrder(ctx context.Context, userID, orderID int64) (orderdom.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.CancelOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", orderID))

	var out orderdom.Order
	err := uc.tx.WithTx(ctx, func(txCtx context.Context) error {
		o, err := uc.owned(txCtx, userID, orderID)
		if err != nil {
			return err
		}
		return uc.cancelInTx(txCtx, &o, &out)
	})
	if err != nil {
		span.RecordError(err)
		return orderdom.Order{}, translate("order_usecase", err)
	}
	uc.resolveItemImages(ctx, &out)
	return out, nil
}

func (uc *OrderUsecase) cancelInTx(ctx context.Context, o *orderdom.Order, out *orderdom.Order) error {
	from := o.Status
	if err := o.Cancel(uc.clock.Now()); err != nil {
		return apperr.Wrap(apperr.KindInvalidState, "Only pending orders can be cancelled", err)
	}
	if err := uc.orders.TransitionStatus(ctx, o.ID, from, o.Status, o.UpdatedAt); err != nil {
		if errors.Is(err, orderdom.ErrConflict) {
			return apperr.Wrap(apperr.KindInvalidState, "Only pending orders can be cancelled", err)
		}
		return err
	}

	for _, it := range o.Items {
		if err := uc.products.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			if errors.Is(err, productdom.ErrNotFound) {
				log.Printf("[order_usecase] restock skipped: product %d of order %s is gone", it.ProductID, o.OrderNumber)
				continue
			}
			return err
		}
	}
	*out = *o
	return nil
}

// UpdateStatus is the customer-facing status change. Only cancellation is allowed.
func (uc *OrderUsecase) UpdateStatus(ctx context.Context, userID, orderID int64, status string) (orderdom.Order, error) {
	next := orderdom.Status(strings.ToLower(strings.TrimSpace(status)))
	if next == "" {
		return orderdom.Order{}, apperr.InvalidArgument("Status is required")
	}

	if next == orderdom.StatusCancelled {
		o, err := uc.CancelOrder(ctx, userID, orderID)
		if apperr.IsKind(err, apperr.KindInvalidState) {
			return orderdom.Order{}, apperr.Wrap(apperr.KindInvalidState, "Cannot update order status", err)
		}
		return o, err
	}

	if _, err := uc.GetOrder(ctx, userID, orderID); err != nil {
		return orderdom.Order{}, err
	}
	return orderdom.Order{}, apperr.InvalidState("Cannot update order status")
}

// ============================================================
// Queries
// ============================================================

// GetOrder returns the order when it belongs to userID.
func (uc *OrderUsecase) GetOrder(ctx context.Context, userID, orderID int64) (orderdom.Order, error) {
	o, err := uc.owned(ctx, userID, orderID)
	if err != nil {
		return orderdom.Order{}, translate("order_usecase", err)
	}
	uc.resolveItemImages(ctx, &o)
	return o, nil
}

// ListOrders returns the user's orders, newest first.
func (uc *OrderUsecase) ListOrders(ctx context.Context, userID int64) ([]orderdom.Order, error) {
	list, err := uc.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate("order_usecase", err)
	}
	for i := range list {
		uc.resolveItemImages(ctx, &list[i])
	}
	return list, nil
}

// TrackByNumber exposes status only; it needs no authentication.
func (uc *OrderUsecase) TrackByNumber(ctx context.Context, number string) (OrderTracking, error) {
	n := strings.ToUpper(strings.TrimSpace(number))
	if n == "" {
		return OrderTracking{}, apperr.NotFound("Order not found")
	}
	o, err := uc.orders.GetByNumber(ctx, n)
	if err != nil {
		return OrderTracking{}, translate("order_usecase", err)
	}
	return OrderTracking{
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		TrackingNumber: o.TrackingNumber,
	}, nil
}

// Stats summarizes every order of the user, cancelled ones included.
func (uc *OrderUsecase) Stats(ctx context.Context, userID int64) (orderdom.Stats, error) {
	s, err := uc.orders.Stats(ctx, userID)
	if err != nil {
		return orderdom.Stats{}, translate("order_usecase", err)
	}
	return s, nil
}

// ============================================================
// Helpers
// ============================================================

func (uc *OrderUsecase) owned(ctx context.Context, userID, orderID int64) (orderdom.Order, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return orderdom.Order{}, err
	}
	if o.UserID != userID {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (uc *OrderUsecase) resolveItemImages(ctx context.Context, o *orderdom.Order) {
	for i := range o.Items {
		o.Items[i].ProductImage = resolveImage(ctx, uc.images, o.Items[i].ProductImage)
	}
}

// mergeLines folds duplicate product ids and sorts by id so that row locks
// are always taken in the same order.
func mergeLines(in []OrderLine) ([]OrderLine, error) {
	if len(in) == 0 {
		return nil, apperr.InvalidArgument("Order must contain at least one item")
	}
	qty := map[int64]int{}
	for _, ln := range in {
		if ln.ProductID <= 0 {
			return nil, apperr.InvalidArgument("Invalid product id")
		}
		if ln.Quantity < 1 {
			return nil, apperr.InvalidArgument("Quantity must be at least 1")
		}
		qty[ln.ProductID] += ln.Quantity
	}

	out := make([]OrderLine, 0, len(qty))
	for id, q := range qty {
		out = append(out, OrderLine{ProductID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func insufficientFor(name string, available int) *apperr.Error {
	e := apperr.InsufficientStock(available)
	e.Message = fmt.Sprintf("Insufficient stock for %s. Available: %d", name, available)
	return e
}
