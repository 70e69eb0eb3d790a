// backend/internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

const (
	DefaultFeaturedLimit = 4
	RelatedLimit         = 4
	MinSearchLength      = 2
)

// ListProductsQuery mirrors the catalog listing query string.
type ListProductsQuery struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // featured | price-low | price-high | name
	Limit    int
}

// StockCheck answers "can I buy N of this?".
type StockCheck struct {
	Available bool
	Stock     int
	Requested int
}

// CatalogUsecase is the public read side of the catalog. Only active products are visible.
type CatalogUsecase struct {
	repo   productdom.Repository
	images ImageURLResolver
}

func NewCatalogUsecase(repo productdom.Repository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

func (uc *CatalogUsecase) WithImageResolver(r ImageURLResolver) *CatalogUsecase {
	uc.images = r
	return uc
}

// List returns active products matching q.
func (uc *CatalogUsecase) List(ctx context.Context, q ListProductsQuery) ([]productdom.Product, error) {
	f := productdom.Filter{
		Category:   q.Category,
		Search:     q.Search,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		ActiveOnly: true,
	}
	return uc.list(ctx, f, sortFor(q.SortBy), q.Limit)
}

// Get returns an active product.
func (uc *CatalogUsecase) Get(ctx context.Context, id int64) (productdom.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return productdom.Product{}, translate("catalog_usecase", err)
	}
	if !p.Purchasable() {
		return productdom.Product{}, apperr.NotFound("Product not found")
	}
	p.Image = resolveImage(ctx, uc.images, p.Image)
	return p, nil
}

// Categories lists distinct categories of active products.
func (uc *CatalogUsecase) Categories(ctx context.Context) ([]string, error) {
	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, translate("catalog_usecase", err)
	}
	return cats, nil
}

// Featured returns the first limit active products.
func (uc *CatalogUsecase) Featured(ctx context.Context, limit int) ([]productdom.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return uc.list(ctx, productdom.Filter{ActiveOnly: true}, productdom.Sort{Column: productdom.SortByID}, limit)
}

// Search runs a free-text search. ok is false when the term is too short to search.
func (uc *CatalogUsecase) Search(ctx context.Context, term string) (products []productdom.Product, ok bool, err error) {
	t := strings.TrimSpace(term)
	if utf8.RuneCountInString(t) < MinSearchLength {
		return []productdom.Product{}, false, nil
	}
	products, err = uc.list(ctx, productdom.Filter{Search: t, ActiveOnly: true}, productdom.Sort{Column: productdom.SortByID}, 0)
	return products, true, err
}

// Related returns up to RelatedLimit active products sharing id's category.
func (uc *CatalogUsecase) Related(ctx context.Context, id int64) ([]productdom.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f := productdom.Filter{Category: p.Category, ActiveOnly: true, ExcludeID: p.ID}
	return uc.list(ctx, f, productdom.Sort{Column: productdom.SortByID}, RelatedLimit)
}

// CheckStock reports whether quantity units of an active product are available.
func (uc *CatalogUsecase) CheckStock(ctx context.Context, id int64, quantity int) (StockCheck, error) {
	if quantity < 1 {
		quantity = 1
	}
	p, err := uc.Get(ctx, id)
	if err != nil {
		return StockCheck{}, err
	}
	return StockCheck{Available: p.CanFulfil(quantity), Stock: p.Stock, Requested: quantity}, nil
}

func (uc *CatalogUsecase) list(ctx context.Context, f productdom.Filter, s productdom.Sort, limit int) ([]productdom.Product, error) {
	list, err := uc.repo.List(ctx, f, s, productdom.Page{Limit: limit})
	if err != nil {
		return nil, translate("catalog_usecase", err)
	}
	for i := range list {
		list[i].Image = resolveImage(ctx, uc.images, list[i].Image)
	}
	return list, nil
}

func sortFor(sortBy string) productdom.Sort {
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price-low":
		return productdom.Sort{Column: productdom.SortByPrice, Order: productdom.SortAsc}
	case "price-high":
		return productdom.Sort{Column: productdom.SortByPrice, Order: productdom.SortDesc}
	case "name":
		return productdom.Sort{Column: productdom.SortByName, Order: productdom.SortAsc}
	default:
		return productdom.Sort{Column: productdom.SortByID, Order: productdom.SortAsc}
	}
}
