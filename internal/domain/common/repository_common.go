package common

import (
	"context"
	"time"
)

// Timestamps is embedded by entities that track creation and update times.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sort is a column + order pair. Each repository validates the allowed columns.
type Sort struct {
	Column string
	Order  SortOrder
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page limits a listing. Limit <= 0 means "no limit".
type Page struct {
	Limit int
}

// TxRunner runs fn inside one transaction carried by the returned context.
// Repositories look the transaction up from ctx, so nested calls join it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
