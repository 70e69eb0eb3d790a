// backend/internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
//   - collection: carts
//   - docId: session id (docId is the source of truth)
//   - fields: items(array), createdAt, updatedAt, expiresAt
//
// TTL:
//   - Configure a Firestore TTL policy on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// GetBySessionID returns (nil, nil) if not found or already past expiresAt.
func (r *CartRepositoryFS) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_fs: sessionID is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	// TTL deletion is lazy on the Firestore side; treat expired docs as gone.
	c := cartFromData(snap.Data())
	if !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt) {
		return nil, nil
	}
	c.ID = sid
	return c, nil
}

// Upsert overwrites the doc at cart.ID (= session id).
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}
	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_fs: Upsert requires cart.ID (= session id) as docId")
	}

	_, err := r.col().Doc(sid).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return errors.New("cart_repository_fs: sessionID is empty")
	}

	_, err := r.col().Doc(sid).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return err
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	Items     []cartItemDoc `firestore:"items"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
	ExpiresAt time.Time     `firestore:"expiresAt"`
}

// Prices are stored as fixed 2dp strings so no float rounding creeps in.
type cartItemDoc struct {
	ProductID int64  `firestore:"productId"`
	Quantity  int64  `firestore:"quantity"`
	Price     string `firestore:"price"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			continue
		}
		items = append(items, cartItemDoc{
			ProductID: it.ProductID,
			Quantity:  int64(it.Quantity),
			Price:     it.Price.StringFixed(2),
		})
	}
	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
		ExpiresAt: c.ExpiresAt.UTC(),
	}
}

// cartFromData parses snap.Data() by hand so that a doc written with a
// slightly different shape still loads instead of failing DataTo.
// Duplicate product lines are merged.
func cartFromData(raw map[string]any) *cartdom.Cart {
	c := &cartdom.Cart{Items: []cartdom.CartItem{}}
	if raw == nil {
		return c
	}

	if t, ok := asTime(raw["createdAt"]); ok {
		c.CreatedAt = t.UTC()
	}
	if t, ok := asTime(raw["updatedAt"]); ok {
		c.UpdatedAt = t.UTC()
	}
	if t, ok := asTime(raw["expiresAt"]); ok {
		c.ExpiresAt = t.UTC()
	}

	list, _ := raw["items"].([]any)
	index := map[int64]int{}
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		pid := asInt64(m["productId"])
		qty := int(asInt64(m["quantity"]))
		if pid <= 0 || qty <= 0 {
			continue
		}
		price := asDecimal(m["price"])

		if i, dup := index[pid]; dup {
			c.Items[i].Quantity += qty
			continue
		}
		index[pid] = len(c.Items)
		c.Items = append(c.Items, cartdom.CartItem{ProductID: pid, Quantity: qty, Price: price})
	}
	return c
}
