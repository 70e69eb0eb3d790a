// backend/internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ========================================
// Status
// ========================================

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether s -> next is part of the lifecycle.
func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// ========================================
// Entity
// ========================================

// Item is an order line. It is immutable once the order is created.
type Item struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`

	// Display fields joined from the catalog on read.
	ProductName  string `json:"product_name,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}

// Subtotal is quantity x frozen price.
func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

type Order struct {
	ID                int64
	UserID            int64
	OrderNumber       string
	Status            Status
	TotalAmount       decimal.Decimal
	Currency          string
	ShippingAddressID *int64
	PaymentMethod     string
	PaymentStatus     string
	TrackingNumber    string
	Notes             string
	Items             []Item
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: conflict")
	ErrInvalidItems    = errors.New("order: invalid items")
	ErrInvalidUserID   = errors.New("order: invalid userId")
	ErrUnknownUser     = errors.New("order: user does not exist")
	ErrInvalidNumber   = errors.New("order: invalid order number")
	ErrInvalidStatus   = errors.New("order: invalid status")
	ErrInvalidCurrency = errors.New("order: invalid currency")
	ErrNotCancellable  = errors.New("order: only pending orders can be cancelled")
)

// ========================================
// Policy
// ========================================

const (
	DefaultCurrency      = "GHS"
	DefaultPaymentStatus = "pending"
)

// ========================================
// Constructors
// ========================================

// New builds a pending order. The total is computed from items and never taken from input.
func New(
	userID int64,
	orderNumber string,
	items []Item,
	currency string,
	shippingAddressID *int64,
	paymentMethod string,
	notes string,
	now time.Time,
) (Order, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = DefaultCurrency
	}

	o := Order{
		UserID:            userID,
		OrderNumber:       strings.TrimSpace(orderNumber),
		Status:            StatusPending,
		Currency:          cur,
		ShippingAddressID: shippingAddressID,
		PaymentMethod:     strings.TrimSpace(paymentMethod),
		PaymentStatus:     DefaultPaymentStatus,
		Notes:             strings.TrimSpace(notes),
		Items:             append([]Item(nil), items...),
		CreatedAt:         now.UTC(),
		UpdatedAt:         now.UTC(),
	}
	o.TotalAmount = Total(o.Items)

	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Total sums quantity x price over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Cancel moves a pending order to cancelled.
func (o *Order) Cancel(now time.Time) error {
	if o.Status != StatusPending {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	o.UpdatedAt = now.UTC()
	return nil
}

// ItemCount is the number of units in the order.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

func (o Order) validate() error {
	if o.UserID <= 0 {
		return ErrInvalidUserID
	}
	if o.OrderNumber == "" {
		return ErrInvalidNumber
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if len(o.Currency) != 3 {
		return ErrInvalidCurrency
	}
	if len(o.Items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if it.ProductID <= 0 || it.Quantity < 1 || it.Price.IsNegative() {
			return ErrInvalidItems
		}
	}
	return nil
}
