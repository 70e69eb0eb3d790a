package product

import (
	"context"

	"github.com/shopspring/decimal"

	common "github.com/Lanor-Jephthah1/gurlhub/internal/domain/common"
)

// Filter narrows catalog listings. Zero values mean "no condition".
type Filter struct {
	Category   string
	Search     string // case-insensitive match on name, description, tags, category
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	ActiveOnly bool
	ExcludeID  int64
}

type Sort = common.Sort
type SortOrder = common.SortOrder
type Page = common.Page

const (
	SortAsc  SortOrder = common.SortAsc
	SortDesc SortOrder = common.SortDesc
)

// Allowed sort columns
const (
	SortByID    string = "id"
	SortByPrice string = "price"
	SortByName  string = "name"
)

// Repository is the Catalog Store port.
type Repository interface {
	// Queries
	GetByID(ctx context.Context, id int64) (Product, error)
	// GetForUpdate reads the row and locks it until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id int64) (Product, error)
	GetMany(ctx context.Context, ids []int64) (map[int64]Product, error)
	List(ctx context.Context, f Filter, s Sort, p Page) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)

	// Commands
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)

	// DecrementStock subtracts qty only if enough stock remains.
	// Returns ErrInsufficientStock when the row would go negative.
	DecrementStock(ctx context.Context, id int64, qty int) error
	IncrementStock(ctx context.Context, id int64, qty int) error
}
