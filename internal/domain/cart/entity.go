// backend/internal/domain/cart/entity.go
package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: invalid quantity")
	ErrItemNotFound    = errors.New("cart: item not found")
)

// DefaultCartTTL is the inactivity window after which a session cart may be evicted.
const DefaultCartTTL = 7 * 24 * time.Hour

// CartItem is one line of a session cart.
// Price is a snapshot copied when the line was last added or updated.
type CartItem struct {
	ProductID int64           `json:"id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal is quantity x snapshot price.
func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Cart is the session-scoped cart.
//   - ID is the session id (one cart per session)
//   - Items keep insertion order
//   - ExpiresAt is refreshed on every mutation
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`

	// TTL overrides DefaultCartTTL when refreshing ExpiresAt. Not persisted.
	TTL time.Duration `json:"-"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(sessionID),
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Quantity returns the quantity held for productID (0 when absent).
func (c *Cart) Quantity(productID int64) int {
	if c == nil {
		return 0
	}
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Has reports whether productID is in the cart.
func (c *Cart) Has(productID int64) bool {
	return c != nil && c.indexOf(productID) >= 0
}

// Add increments the quantity for productID and refreshes its price snapshot.
// qty must be >= 1.
func (c *Cart) Add(productID int64, qty int, price decimal.Decimal, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity += qty
		c.Items[i].Price = price
	} else {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty, Price: price})
	}

	c.touch(now)
	return c.validate()
}

// SetQty replaces the quantity for an existing line.
// qty == 0 removes the line; the line must exist.
func (c *Cart) SetQty(productID int64, qty int, price decimal.Decimal, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}

	if qty == 0 {
		c.Items = removeIndex(c.Items, i)
	} else {
		c.Items[i].Quantity = qty
		c.Items[i].Price = price
	}

	c.touch(now)
	return c.validate()
}

// Remove deletes the line for productID.
func (c *Cart) Remove(productID int64, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	c.Items = removeIndex(c.Items, i)
	c.touch(now)
	return c.validate()
}

// Total is the sum of quantity x snapshot price.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	if c == nil {
		return total
	}
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// ----------------------------
// Validation against the live catalog
// ----------------------------

// IssueType classifies a reconciliation finding.
type IssueType string

const (
	IssueUnavailable       IssueType = "unavailable"
	IssueInsufficientStock IssueType = "insufficient_stock"
	IssuePriceChanged      IssueType = "price_changed"
)

// Issue is one finding of Reconcile.
type Issue struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        IssueType `json:"type"`
	Message     string    `json:"issue"`
}

// Reconcile aligns the cart with live products:
//   - drops lines whose product is missing or inactive
//   - clamps quantities above stock (lines clamped to 0 are dropped)
//   - refreshes drifted price snapshots
//
// Running it twice without catalog changes yields no issues the second time.
func (c *Cart) Reconcile(live map[int64]productdom.Product, now time.Time) []Issue {
	issues := []Issue{}
	if c == nil {
		return issues
	}

	kept := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		p, ok := live[it.ProductID]
		if !ok || !p.Purchasable() {
			issues = append(issues, Issue{
				ProductID: it.ProductID,
				Type:      IssueUnavailable,
				Message:   "Product no longer available",
			})
			continue
		}

		if p.Stock < it.Quantity {
			issues = append(issues, Issue{
				ProductID:   it.ProductID,
				ProductName: p.Name,
				Type:        IssueInsufficientStock,
				Message:     fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", p.Stock, it.Quantity),
			})
			it.Quantity = p.Stock
		}

		if !p.Price.Equal(it.Price) {
			issues = append(issues, Issue{
				ProductID:   it.ProductID,
				ProductName: p.Name,
				Type:        IssuePriceChanged,
				Message:     fmt.Sprintf("Price changed from %s to %s", it.Price.StringFixed(2), p.Price.StringFixed(2)),
			})
			it.Price = p.Price
		}

		if it.Quantity < 1 {
			continue
		}
		kept = append(kept, it)
	}

	c.Items = kept
	c.touch(now)
	return issues
}

// ProductIDs returns the ids of all lines in cart order.
func (c *Cart) ProductIDs() []int64 {
	if c == nil {
		return nil
	}
	ids := make([]int64, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

func (c *Cart) touch(now time.Time) {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(ttl)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) || c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	seen := map[int64]struct{}{}
	for _, it := range c.Items {
		if it.Quantity < 1 {
			return ErrInvalidCart
		}
		if _, dup := seen[it.ProductID]; dup {
			return ErrInvalidCart
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func (c *Cart) indexOf(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func removeIndex(items []CartItem, idx int) []CartItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	out := make([]CartItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}
