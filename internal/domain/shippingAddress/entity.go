package shippingAddress

import (
	"errors"
	"strings"
	"time"
)

// ShippingAddress is a delivery address owned by one user.
// At most one address per user is the default.
type ShippingAddress struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Label      string `json:"label"` // Home, Office, ...
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch is a partial update. nil means "no change".
type Patch struct {
	Label      *string
	Name       *string
	Phone      *string
	Street     *string
	City       *string
	Region     *string
	PostalCode *string
	Country    *string
	IsDefault  *bool
}

// DefaultCountry is used when the client omits country.
const DefaultCountry = "Ghana"

// Errors
var (
	ErrNotFound       = errors.New("shippingAddress: not found")
	ErrInvalidUserID  = errors.New("shippingAddress: invalid userId")
	ErrInvalidName    = errors.New("shippingAddress: invalid name")
	ErrInvalidPhone   = errors.New("shippingAddress: invalid phone")
	ErrInvalidStreet  = errors.New("shippingAddress: invalid street")
	ErrInvalidCity    = errors.New("shippingAddress: invalid city")
	ErrInvalidRegion  = errors.New("shippingAddress: invalid region")
	ErrInvalidCountry = errors.New("shippingAddress: invalid country")
)

// New builds an address. An empty country becomes DefaultCountry.
func New(userID int64, label, name, phone, street, city, region, postalCode, country string, isDefault bool, now time.Time) (ShippingAddress, error) {
	a := ShippingAddress{
		UserID:     userID,
		Label:      strings.TrimSpace(label),
		Name:       strings.TrimSpace(name),
		Phone:      strings.TrimSpace(phone),
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		Region:     strings.TrimSpace(region),
		PostalCode: strings.TrimSpace(postalCode),
		Country:    strings.TrimSpace(country),
		IsDefault:  isDefault,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if a.Country == "" {
		a.Country = DefaultCountry
	}
	if err := a.validate(); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

// Apply merges p into a. IsDefault=false in a patch is ignored; defaults move by promoting another address.
func (a *ShippingAddress) Apply(p Patch, now time.Time) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Label, p.Label)
	set(&a.Name, p.Name)
	set(&a.Phone, p.Phone)
	set(&a.Street, p.Street)
	set(&a.City, p.City)
	set(&a.Region, p.Region)
	set(&a.PostalCode, p.PostalCode)
	set(&a.Country, p.Country)
	if p.IsDefault != nil && *p.IsDefault {
		a.IsDefault = true
	}
	a.UpdatedAt = now.UTC()
	return a.validate()
}

func (a ShippingAddress) validate() error {
	if a.UserID <= 0 {
		return ErrInvalidUserID
	}
	if a.Name == "" {
		return ErrInvalidName
	}
	if a.Phone == "" {
		return ErrInvalidPhone
	}
	if a.Street == "" {
		return ErrInvalidStreet
	}
	if a.City == "" {
		return ErrInvalidCity
	}
	if a.Region == "" {
		return ErrInvalidRegion
	}
	if a.Country == "" {
		return ErrInvalidCountry
	}
	return nil
}
