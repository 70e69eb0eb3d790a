package wishlist

import (
	"errors"
	"time"
)

// Item links a user to a saved product. (user_id, product_id) is unique.
type Item struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrNotFound      = errors.New("wishlist: item not found")
	ErrAlreadyExists = errors.New("wishlist: product already in wishlist")
)
