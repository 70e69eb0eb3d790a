package shippingAddress

import "context"

// Repository persists ShippingAddress.
type Repository interface {
	// GetByIDForUser returns ErrNotFound when the address is missing or owned by someone else.
	GetByIDForUser(ctx context.Context, id, userID int64) (ShippingAddress, error)
	// ListByUser returns the default address first.
	ListByUser(ctx context.Context, userID int64) ([]ShippingAddress, error)
	CountByUser(ctx context.Context, userID int64) (int, error)

	Create(ctx context.Context, a ShippingAddress) (ShippingAddress, error)
	Save(ctx context.Context, a ShippingAddress) (ShippingAddress, error)
	// ClearDefault unsets is_default on every address of the user.
	ClearDefault(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
