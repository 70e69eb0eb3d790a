// backend/internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"errors"
	"time"

	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	wldom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/wishlist"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// WishlistEntry is a saved item joined with its product. Product is nil
// when the product no longer exists.
type WishlistEntry struct {
	ID        int64
	Product   *productdom.Product
	CreatedAt time.Time
}

type WishlistUsecase struct {
	repo     wldom.Repository
	products productdom.Repository
	images   ImageURLResolver
	clock    Clock
}

func NewWishlistUsecase(repo wldom.Repository, products productdom.Repository) *WishlistUsecase {
	return &WishlistUsecase{repo: repo, products: products, clock: systemClock{}}
}

func (u *WishlistUsecase) WithImageResolver(r ImageURLResolver) *WishlistUsecase {
	u.images = r
	return u
}

// List returns the wishlist, newest first.
func (u *WishlistUsecase) List(ctx context.Context, userID int64) ([]WishlistEntry, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate("wishlist_usecase", err)
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	live, err := u.products.GetMany(ctx, ids)
	if err != nil {
		return nil, translate("wishlist_usecase", err)
	}

	out := make([]WishlistEntry, 0, len(items))
	for _, it := range items {
		out = append(out, u.entry(ctx, it, live))
	}
	return out, nil
}

// Add saves productID. Duplicates are a Conflict.
func (u *WishlistUsecase) Add(ctx context.Context, userID, productID int64) (WishlistEntry, error) {
	if productID <= 0 {
		return WishlistEntry{}, apperr.InvalidArgument("Product ID required")
	}
	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return WishlistEntry{}, apperr.Wrap(apperr.KindNotFound, "Product not found", err)
		}
		return WishlistEntry{}, translate("wishlist_usecase", err)
	}

	it, err := u.repo.Add(ctx, wldom.Item{UserID: userID, ProductID: productID, CreatedAt: u.clock.Now()})
	if err != nil {
		return WishlistEntry{}, translate("wishlist_usecase", err)
	}
	return u.entry(ctx, it, map[int64]productdom.Product{p.ID: p}), nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID int64) error {
	return translate("wishlist_usecase", u.repo.Remove(ctx, userID, productID))
}

func (u *WishlistUsecase) Clear(ctx context.Context, userID int64) error {
	return translate("wishlist_usecase", u.repo.DeleteByUser(ctx, userID))
}

func (u *WishlistUsecase) entry(ctx context.Context, it wldom.Item, live map[int64]productdom.Product) WishlistEntry {
	e := WishlistEntry{ID: it.ID, CreatedAt: it.CreatedAt}
	if p, ok := live[it.ProductID]; ok {
		p.Image = resolveImage(ctx, u.images, p.Image)
		e.Product = &p
	}
	return e
}
