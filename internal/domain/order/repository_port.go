package order

import (
	"context"
	"time"
)

// Stats is the per-user order summary.
type Stats struct {
	TotalOrders     int
	TotalSpent      string // decimal string, 2dp
	StatusBreakdown map[Status]int
}

// Repository is the Order Ledger persistence port.
// All commands are expected to run inside a transaction carried by ctx.
type Repository interface {
	// Queries
	GetByID(ctx context.Context, id int64) (Order, error)
	GetByNumber(ctx context.Context, number string) (Order, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	ListPendingByUser(ctx context.Context, userID int64) ([]Order, error)
	Stats(ctx context.Context, userID int64) (Stats, error)

	// Commands

	// Create inserts the order and its items. A duplicate order number yields ErrConflict,
	// a user that no longer exists yields ErrUnknownUser.
	Create(ctx context.Context, o Order) (Order, error)

	// TransitionStatus sets next only if the current status is from, stamping updated_at with at.
	// Returns ErrNotFound when the order is absent, ErrConflict when the status differs.
	TransitionStatus(ctx context.Context, id int64, from, next Status, at time.Time) error

	DeleteByUser(ctx context.Context, userID int64) error
}
