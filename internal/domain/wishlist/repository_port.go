package wishlist

import "context"

// Repository persists wishlist items.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]Item, error)
	// Add returns ErrAlreadyExists on a duplicate (user, product).
	Add(ctx context.Context, it Item) (Item, error)
	// Remove returns ErrNotFound when the product is not in the wishlist.
	Remove(ctx context.Context, userID, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
