// backend/internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("product: not found")
	ErrInvalid           = errors.New("product: invalid")
	ErrInsufficientStock = errors.New("product: insufficient stock")
)

// Product is a catalog record. Products are never deleted; they are deactivated.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// New builds an active product. price is rounded to 2 decimal places.
func New(name, category string, price decimal.Decimal, image, description string, tags []string, stock int, now time.Time) (Product, error) {
	p := Product{
		Name:        strings.TrimSpace(name),
		Category:    strings.TrimSpace(category),
		Price:       price.Round(2),
		Image:       strings.TrimSpace(image),
		Description: strings.TrimSpace(description),
		Tags:        normalizeTags(tags),
		Stock:       stock,
		Active:      true,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Purchasable reports whether the product can be put in a cart or ordered.
func (p *Product) Purchasable() bool {
	return p != nil && p.Active
}

// CanFulfil reports whether qty units are in stock.
func (p *Product) CanFulfil(qty int) bool {
	return p != nil && qty >= 0 && p.Stock >= qty
}

func (p *Product) validate() error {
	if p.Name == "" || p.Category == "" {
		return ErrInvalid
	}
	if p.Price.IsNegative() {
		return ErrInvalid
	}
	if p.Stock < 0 {
		return ErrInvalid
	}
	return nil
}

// ----------------------------
// Tags (stored as CSV)
// ----------------------------

// JoinTags renders tags for storage.
func JoinTags(tags []string) string {
	return strings.Join(normalizeTags(tags), ",")
}

// SplitTags parses the stored CSV form.
func SplitTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	return normalizeTags(strings.Split(csv, ","))
}

func normalizeTags(src []string) []string {
	out := make([]string, 0, len(src))
	seen := map[string]struct{}{}
	for _, t := range src {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
