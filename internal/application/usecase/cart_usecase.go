// backend/internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// CartLineView is one cart line joined with the live product.
type CartLineView struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Image     string
	Category  string
	Quantity  int
	Stock     int
}

// CartView is the enriched cart returned by Read.
type CartView struct {
	Items     []CartLineView
	Total     decimal.Decimal
	ItemCount int
}

// CartValidation is the outcome of Validate.
type CartValidation struct {
	Valid  bool
	Issues []cartdom.Issue
	Cart   *cartdom.Cart
}

// CartUsecase coordinates session cart operations against the live catalog.
// The cart never writes catalog stock.
type CartUsecase struct {
	repo     cartdom.Repository
	products productdom.Repository
	images   ImageURLResolver
	clock    Clock
	ttl      time.Duration
}

func NewCartUsecase(repo cartdom.Repository, products productdom.Repository) *CartUsecase {
	return NewCartUsecaseWithClock(repo, products, nil)
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, products productdom.Repository, clock Clock) *CartUsecase {
	return &CartUsecase{
		repo:     repo,
		products: products,
		clock:    clockOrSystem(clock),
		ttl:      cartdom.DefaultCartTTL,
	}
}

// WithTTL sets the inactivity window refreshed on every mutation.
func (uc *CartUsecase) WithTTL(ttl time.Duration) *CartUsecase {
	if ttl > 0 {
		uc.ttl = ttl
	}
	return uc
}

func (uc *CartUsecase) WithImageResolver(r ImageURLResolver) *CartUsecase {
	uc.images = r
	return uc
}

// ============================================================
// Commands
// ============================================================

// AddItem adds qty units of productID, refreshing the price snapshot.
// The resulting line quantity must not exceed live stock.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID string, productID int64, qty int) (*cartdom.Cart, error) {
	if productID <= 0 {
		return nil, apperr.InvalidArgument("Product ID required")
	}
	if qty < 1 {
		return nil, apperr.InvalidArgument("Quantity must be at least 1")
	}

	p, err := uc.purchasable(ctx, productID)
	if err != nil {
		return nil, err
	}

	c, err := uc.loadOrNew(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if want := c.Quantity(productID) + qty; !p.CanFulfil(want) {
		return nil, apperr.InsufficientStock(p.Stock)
	}

	if err := c.Add(productID, qty, p.Price, uc.clock.Now()); err != nil {
		return nil, translate("cart_usecase", err)
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, translate("cart_usecase", err)
	}
	return c, nil
}

// UpdateItem replaces the quantity of an existing line. qty == 0 removes it.
func (uc *CartUsecase) UpdateItem(ctx context.Context, sessionID string, productID int64, qty int) (*cartdom.Cart, error) {
	if productID <= 0 {
		return nil, apperr.InvalidArgument("Product ID and quantity required")
	}
	if qty < 0 {
		return nil, apperr.InvalidArgument("Quantity cannot be negative")
	}

	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Has(productID) {
		return nil, apperr.NotFound("Item not in cart")
	}

	now := uc.clock.Now()
	if qty == 0 {
		if err := c.Remove(productID, now); err != nil {
			return nil, translate("cart_usecase", err)
		}
	} else {
		p, err := uc.purchasable(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !p.CanFulfil(qty) {
			return nil, apperr.InsufficientStock(p.Stock)
		}
		if err := c.SetQty(productID, qty, p.Price, now); err != nil {
			return nil, translate("cart_usecase", err)
		}
	}

	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, translate("cart_usecase", err)
	}
	return c, nil
}

// RemoveItem deletes the line for productID.
func (uc *CartUsecase) RemoveItem(ctx context.Context, sessionID string, productID int64) (*cartdom.Cart, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Has(productID) {
		return nil, apperr.NotFound("Item not in cart")
	}
	if err := c.Remove(productID, uc.clock.Now()); err != nil {
		return nil, translate("cart_usecase", err)
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, translate("cart_usecase", err)
	}
	return c, nil
}

// Clear drops the stored cart. A missing cart is not an error.
func (uc *CartUsecase) Clear(ctx context.Context, sessionID string) error {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return apperr.InvalidArgument("Session required")
	}
	return translate("cart_usecase", uc.repo.DeleteBySessionID(ctx, sid))
}

// Validate reconciles the stored cart with the live catalog and persists the result.
// Running it twice without catalog changes reports no issues the second time.
func (uc *CartUsecase) Validate(ctx context.Context, sessionID string) (CartValidation, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return CartValidation{}, err
	}
	if c == nil {
		empty, err := cartdom.NewCart(sessionID, uc.clock.Now())
		if err != nil {
			return CartValidation{}, apperr.InvalidArgument("Session required")
		}
		return CartValidation{Valid: true, Issues: []cartdom.Issue{}, Cart: empty}, nil
	}

	live, err := uc.products.GetMany(ctx, c.ProductIDs())
	if err != nil {
		return CartValidation{}, translate("cart_usecase", err)
	}

	issues := c.Reconcile(live, uc.clock.Now())
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return CartValidation{}, translate("cart_usecase", err)
	}
	return CartValidation{Valid: len(issues) == 0, Issues: issues, Cart: c}, nil
}

// ============================================================
// Queries
// ============================================================

// Get returns the raw cart, or an empty one when the session has none.
func (uc *CartUsecase) Get(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return uc.newCart(sessionID)
	}
	return c, nil
}

// Read joins every line with the live product. Missing or inactive products
// are left out of the view; the stored cart is not modified.
func (uc *CartUsecase) Read(ctx context.Context, sessionID string) (CartView, error) {
	view := CartView{Items: []CartLineView{}, Total: decimal.Zero}

	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return view, err
	}
	if c == nil || len(c.Items) == 0 {
		return view, nil
	}

	live, err := uc.products.GetMany(ctx, c.ProductIDs())
	if err != nil {
		return view, translate("cart_usecase", err)
	}

	for _, it := range c.Items {
		p, ok := live[it.ProductID]
		if !ok || !p.Purchasable() {
			continue
		}
		view.Items = append(view.Items, CartLineView{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     resolveImage(ctx, uc.images, p.Image),
			Category:  p.Category,
			Quantity:  it.Quantity,
			Stock:     p.Stock,
		})
		view.Total = view.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		view.ItemCount += it.Quantity
	}
	return view, nil
}

// Count is the sum of quantities in the stored cart.
func (uc *CartUsecase) Count(ctx context.Context, sessionID string) (int, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// ============================================================
// Helpers
// ============================================================

func (uc *CartUsecase) load(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, apperr.InvalidArgument("Session required")
	}
	c, err := uc.repo.GetBySessionID(ctx, sid)
	if err != nil {
		return nil, translate("cart_usecase", err)
	}
	if c != nil {
		c.TTL = uc.ttl
	}
	return c, nil
}

func (uc *CartUsecase) loadOrNew(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	c, err := uc.load(ctx, sessionID)
	if err != nil || c != nil {
		return c, err
	}
	return uc.newCart(sessionID)
}

func (uc *CartUsecase) newCart(sessionID string) (*cartdom.Cart, error) {
	c, err := cartdom.NewCart(sessionID, uc.clock.Now())
	if err != nil {
		return nil, apperr.InvalidArgument("Session required")
	}
	c.TTL = uc.ttl
	c.ExpiresAt = c.CreatedAt.Add(uc.ttl)
	return c, nil
}

func (uc *CartUsecase) purchasable(ctx context.Context, productID int64) (productdom.Product, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return productdom.Product{}, apperr.Wrap(apperr.KindNotFound, "Product not found", err)
		}
		return productdom.Product{}, translate("cart_usecase", err)
	}
	if !p.Purchasable() {
		return productdom.Product{}, apperr.NotFound("Product not found")
	}
	return p, nil
}
