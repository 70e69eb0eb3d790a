// backend/internal/application/usecase/shippingAddress_usecase.go
package usecase

import (
	"context"

	common "github.com/Lanor-Jephthah1/gurlhub/internal/domain/common"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// NewShippingAddressInput is the create request. Label, PostalCode and Country are optional.
type NewShippingAddressInput struct {
	Label      string
	Name       string
	Phone      string
	Street     string
	City       string
	Region     string
	PostalCode string
	Country    string
	IsDefault  bool
}

// ShippingAddressUsecase manages a user's address book.
// At most one address per user is the default; the first one always is.
type ShippingAddressUsecase struct {
	tx    common.TxRunner
	repo  sadom.Repository
	clock Clock
}

func NewShippingAddressUsecase(tx common.TxRunner, repo sadom.Repository) *ShippingAddressUsecase {
	return &ShippingAddressUsecase{tx: tx, repo: repo, clock: systemClock{}}
}

// ============================================================
// Queries
// ============================================================

func (u *ShippingAddressUsecase) List(ctx context.Context, userID int64) ([]sadom.ShippingAddress, error) {
	list, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate("shippingAddress_usecase", err)
	}
	return list, nil
}

// ============================================================
// Commands
// ============================================================

func (u *ShippingAddressUsecase) Create(ctx context.Context, userID int64, in NewShippingAddressInput) (sadom.ShippingAddress, error) {
	var out sadom.ShippingAddress
	err := u.tx.WithTx(ctx, func(ctx context.Context) error {
		n, err := u.repo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		isDefault := in.IsDefault || n == 0

		a, err := sadom.New(userID, in.Label, in.Name, in.Phone, in.Street, in.City, in.Region, in.PostalCode, in.Country, isDefault, u.clock.Now())
		if err != nil {
			return err
		}
		if isDefault && n > 0 {
			if err := u.repo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		out, err = u.repo.Create(ctx, a)
		return err
	})
	if err != nil {
		return sadom.ShippingAddress{}, translate("shippingAddress_usecase", err)
	}
	return out, nil
}

func (u *ShippingAddressUsecase) Update(ctx context.Context, userID, id int64, p sadom.Patch) (sadom.ShippingAddress, error) {
	var out sadom.ShippingAddress
	err := u.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := u.repo.GetByIDForUser(ctx, id, userID)
		if err != nil {
			return err
		}
		promote := p.IsDefault != nil && *p.IsDefault && !a.IsDefault
		if err := a.Apply(p, u.clock.Now()); err != nil {
			return err
		}
		if promote {
			if err := u.repo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		out, err = u.repo.Save(ctx, a)
		return err
	})
	if err != nil {
		return sadom.ShippingAddress{}, translate("shippingAddress_usecase", err)
	}
	return out, nil
}

func (u *ShippingAddressUsecase) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return apperr.NotFound("Address not found")
	}
	return translate("shippingAddress_usecase", u.repo.Delete(ctx, id, userID))
}
