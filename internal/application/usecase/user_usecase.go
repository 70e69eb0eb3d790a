// backend/internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"

	common "github.com/Lanor-Jephthah1/gurlhub/internal/domain/common"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	productdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/product"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
	wldom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/wishlist"
)

// UserUsecase orchestrates profile operations.
type UserUsecase struct {
	tx        common.TxRunner
	users     userdom.Repository
	orders    orderdom.Repository
	products  productdom.Repository
	addresses sadom.Repository
	wishlist  wldom.Repository
	clock     Clock
}

func NewUserUsecase(
	tx common.TxRunner,
	users userdom.Repository,
	orders orderdom.Repository,
	products productdom.Repository,
	addresses sadom.Repository,
	wishlist wldom.Repository,
) *UserUsecase {
	return &UserUsecase{
		tx:        tx,
		users:     users,
		orders:    orders,
		products:  products,
		addresses: addresses,
		wishlist:  wishlist,
		clock:     systemClock{},
	}
}

// Queries

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (userdom.User, error) {
	v, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return userdom.User{}, translate("user_usecase", err)
	}
	return v, nil
}

// Commands

// UpdateProfile applies p to the user's profile.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, p userdom.Patch) (userdom.User, error) {
	v, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return userdom.User{}, translate("user_usecase", err)
	}
	if err := v.Apply(p, u.clock.Now()); err != nil {
		return userdom.User{}, translate("user_usecase", err)
	}
	saved, err := u.users.Save(ctx, v)
	if err != nil {
		return userdom.User{}, translate("user_usecase", err)
	}
	return saved, nil
}

// DeleteAccount removes the user and everything they own in one transaction.
// Pending orders are cancelled first so their stock returns to the catalog.
func (u *UserUsecase) DeleteAccount(ctx context.Context, userID int64) error {
	err := u.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := u.users.GetByID(ctx, userID); err != nil {
			return err
		}

		pending, err := u.orders.ListPendingByUser(ctx, userID)
		if err != nil {
			return err
		}
		now := u.clock.Now()
		for _, o := range pending {
			if err := u.orders.TransitionStatus(ctx, o.ID, orderdom.StatusPending, orderdom.StatusCancelled, now); err != nil {
				return err
			}
			for _, it := range o.Items {
				if err := u.products.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil && !errors.Is(err, productdom.ErrNotFound) {
					return err
				}
			}
		}

		if err := u.orders.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := u.wishlist.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := u.addresses.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return u.users.Delete(ctx, userID)
	})
	if err != nil {
		return translate("user_usecase", err)
	}
	log.Printf("[user_usecase] deleted account user=%d", userID)
	return nil
}
