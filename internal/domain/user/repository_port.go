package user

import "context"

// Repository is the persistence port for User.
type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// Create returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u User) (User, error)
	Save(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) error
}
