// backend/internal/adapters/in/http/handlers/presenters.go
package handlers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
)

// money renders a decimal as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// jsonNumber renders an already formatted decimal string.
func jsonNumber(s string) json.Number {
	if s == "" {
		return json.Number("0.00")
	}
	return json.Number(s)
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ============================================================
// Product
// ============================================================

type productDTO struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Desc     string      `json:"desc"`
	Tags     []string    `json:"tags"`
	Stock    int         `json:"stock"`
	IsActive bool        `json:"is_active"`
}

func toProductDTO(p productdom.Product) productDTO {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return productDTO{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    money(p.Price),
		Image:    p.Image,
		Desc:     p.Description,
		Tags:     tags,
		Stock:    p.Stock,
		IsActive: p.Active,
	}
}

func toProductDTOs(list []productdom.Product) []productDTO {
	out := make([]productDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProductDTO(p))
	}
	return out
}

// ============================================================
// Cart
// ============================================================

type cartLineDTO struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Image    string      `json:"image"`
	Category string      `json:"category"`
	Quantity int         `json:"quantity"`
	Stock    int         `json:"stock"`
}

type cartItemDTO struct {
	ID       int64       `json:"id"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

func toCartLines(v usecase.CartView) []cartLineDTO {
	out := make([]cartLineDTO, 0, len(v.Items))
	for _, it := range v.Items {
		out = append(out, cartLineDTO{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    money(it.Price),
			Image:    it.Image,
			Category: it.Category,
			Quantity: it.Quantity,
			Stock:    it.Stock,
		})
	}
	return out
}

// toCartItems renders the raw session cart (snapshot prices).
func toCartItems(c *cartdom.Cart) []cartItemDTO {
	out := []cartItemDTO{}
	if c == nil {
		return out
	}
	for _, it := range c.Items {
		out = append(out, cartItemDTO{ID: it.ProductID, Quantity: it.Quantity, Price: money(it.Price)})
	}
	return out
}

// ============================================================
// Order
// ============================================================

type orderProductDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type orderItemDTO struct {
	ID       int64            `json:"id"`
	Product  *orderProductDTO `json:"product"`
	Quantity int              `json:"quantity"`
	Price    json.Number      `json:"price"`
	Subtotal json.Number      `json:"subtotal"`
}

type orderDTO struct {
	ID                int64          `json:"id"`
	OrderNumber       string         `json:"order_number"`
	Status            string         `json:"status"`
	TotalAmount       json.Number    `json:"total_amount"`
	Currency          string         `json:"currency"`
	PaymentMethod     string         `json:"payment_method"`
	PaymentStatus     string         `json:"payment_status"`
	TrackingNumber    *string        `json:"tracking_number"`
	ShippingAddressID *int64         `json:"shipping_address_id,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
	Items             []orderItemDTO `json:"items"`
}

func toOrderDTO(o orderdom.Order) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		var prod *orderProductDTO
		if it.ProductName != "" {
			prod = &orderProductDTO{ID: it.ProductID, Name: it.ProductName, Image: it.ProductImage}
		}
		items = append(items, orderItemDTO{
			ID:       it.ID,
			Product:  prod,
			Quantity: it.Quantity,
			Price:    money(it.Price),
			Subtotal: money(it.Subtotal()),
		})
	}
	return orderDTO{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		Status:            string(o.Status),
		TotalAmount:       money(o.TotalAmount),
		Currency:          o.Currency,
		PaymentMethod:     o.PaymentMethod,
		PaymentStatus:     o.PaymentStatus,
		TrackingNumber:    optString(o.TrackingNumber),
		ShippingAddressID: o.ShippingAddressID,
		Notes:             o.Notes,
		CreatedAt:         toRFC3339(o.CreatedAt),
		UpdatedAt:         toRFC3339(o.UpdatedAt),
		Items:             items,
	}
}

func toOrderDTOs(list []orderdom.Order) []orderDTO {
	out := make([]orderDTO, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderDTO(o))
	}
	return out
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ============================================================
// User / Address / Wishlist
// ============================================================

type userDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Birthday  *string `json:"birthday"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toUserDTO(u userdom.User) userDTO {
	var bday *string
	if u.Birthday != nil {
		s := u.Birthday.UTC().Format(userdom.BirthdayLayout)
		bday = &s
	}
	return userDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     optString(u.Phone),
		Birthday:  bday,
		CreatedAt: toRFC3339(u.CreatedAt),
		UpdatedAt: toRFC3339(u.UpdatedAt),
	}
}

type addressDTO struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func toAddressDTO(a sadom.ShippingAddress) addressDTO {
	return addressDTO{
		ID:         a.ID,
		Label:      a.Label,
		Name:       a.Name,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
}

type wishlistDTO struct {
	ID        int64       `json:"id"`
	Product   *productDTO `json:"product"`
	CreatedAt string      `json:"created_at"`
}

func toWishlistDTO(e usecase.WishlistEntry) wishlistDTO {
	out := wishlistDTO{ID: e.ID, CreatedAt: toRFC3339(e.CreatedAt)}
	if e.Product != nil {
		p := toProductDTO(*e.Product)
		out.Product = &p
	}
	return out
}
