// backend/internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the session cart store.
//
// Implementations:
//   - memory (single process, dev/tests)
//   - redis (key per session, EXPIRE = TTL)
//   - firestore (collection "carts", docId = session id, TTL on expiresAt)
type Repository interface {
	// GetBySessionID returns (nil, nil) when the session has no cart.
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)

	// Upsert saves the whole cart under c.ID.
	Upsert(ctx context.Context, c *Cart) error

	// DeleteBySessionID removes the cart. Missing carts are not an error.
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
