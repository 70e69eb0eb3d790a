// backend/internal/application/usecase/common_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"go.opentelemetry.io/otel"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
	wldom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/wishlist"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

var tracer = otel.Tracer("github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase")

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return systemClock{}
	}
	return c
}

// ImageURLResolver turns stored image references into client URLs.
type ImageURLResolver interface {
	ResolveImageURL(ctx context.Context, ref string) string
}

func resolveImage(ctx context.Context, r ImageURLResolver, ref string) string {
	if r == nil {
		return ref
	}
	return r.ResolveImageURL(ctx, ref)
}

// translate maps domain and infrastructure errors onto apperr kinds.
// Errors that are already classified pass through.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, productdom.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Product not found", err)
	case errors.Is(err, productdom.ErrInsufficientStock):
		return apperr.Wrap(apperr.KindInsufficientStock, "Insufficient stock", err)
	case errors.Is(err, productdom.ErrInvalid):
		return apperr.Wrap(apperr.KindInvalidArgument, "Invalid product", err)

	case errors.Is(err, orderdom.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Order not found", err)
	case errors.Is(err, orderdom.ErrConflict):
		return apperr.Wrap(apperr.KindConflict, "Order number already in use", err)
	case errors.Is(err, orderdom.ErrUnknownUser):
		return apperr.Wrap(apperr.KindUnauthenticated, "Authentication required", err)
	case errors.Is(err, orderdom.ErrNotCancellable):
		return apperr.Wrap(apperr.KindInvalidState, "Only pending orders can be cancelled", err)
	case errors.Is(err, orderdom.ErrInvalidItems):
		return apperr.Wrap(apperr.KindInvalidArgument, "Order must contain at least one item", err)
	case errors.Is(err, orderdom.ErrInvalidCurrency):
		return apperr.Wrap(apperr.KindInvalidArgument, "Invalid currency", err)

	case errors.Is(err, cartdom.ErrItemNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Item not in cart", err)
	case errors.Is(err, cartdom.ErrInvalidQuantity):
		return apperr.Wrap(apperr.KindInvalidArgument, "Invalid quantity", err)

	case errors.Is(err, userdom.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "User not found", err)
	case errors.Is(err, userdom.ErrEmailTaken):
		return apperr.Wrap(apperr.KindConflict, "Email already registered", err)
	case errors.Is(err, userdom.ErrInvalidEmail):
		return apperr.Wrap(apperr.KindInvalidArgument, "Invalid email format", err)
	case errors.Is(err, userdom.ErrInvalidName):
		return apperr.Wrap(apperr.KindInvalidArgument, "Name is required", err)
	case errors.Is(err, userdom.ErrWeakPassword):
		return apperr.Wrap(apperr.KindInvalidArgument, "Password must be at least 8 characters with 1 uppercase and 1 number", err)
	case errors.Is(err, userdom.ErrInvalidBirthday):
		return apperr.Wrap(apperr.KindInvalidArgument, "Invalid birthday format", err)

	case errors.Is(err, sadom.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Address not found", err)
	case errors.Is(err, sadom.ErrInvalidName), errors.Is(err, sadom.ErrInvalidPhone),
		errors.Is(err, sadom.ErrInvalidStreet), errors.Is(err, sadom.ErrInvalidCity),
		errors.Is(err, sadom.ErrInvalidRegion), errors.Is(err, sadom.ErrInvalidCountry),
		errors.Is(err, sadom.ErrInvalidUserID):
		return apperr.Wrap(apperr.KindInvalidArgument, "Missing required fields", err)

	case errors.Is(err, wldom.ErrNotFound):
		return apperr.Wrap(apperr.KindNotFound, "Item not in wishlist", err)
	case errors.Is(err, wldom.ErrAlreadyExists):
		return apperr.Wrap(apperr.KindConflict, "Product already in wishlist", err)

	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("[%s] deadline exceeded: %v", op, err)
		return apperr.Wrap(apperr.KindUnavailable, "Request timed out, please retry", err)
	case errors.Is(err, context.Canceled):
		return apperr.Wrap(apperr.KindUnavailable, "Request cancelled", err)
	}

	log.Printf("[%s] internal error: %v", op, err)
	return apperr.Internal(err)
}
