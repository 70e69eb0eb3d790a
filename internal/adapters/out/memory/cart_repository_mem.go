// backend/internal/adapters/out/memory/cart_repository_mem.go
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
)

// CartRepositoryMem implements cart.Repository in process memory.
// Expired carts are dropped lazily on read and by Sweep.
type CartRepositoryMem struct {
	mu    sync.RWMutex
	carts map[string]*cartdom.Cart
	now   func() time.Time
}

func NewCartRepositoryMem() *CartRepositoryMem {
	return &CartRepositoryMem{
		carts: map[string]*cartdom.Cart{},
		now:   time.Now,
	}
}

// WithClock replaces the clock used for expiry checks.
func (r *CartRepositoryMem) WithClock(now func() time.Time) *CartRepositoryMem {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *CartRepositoryMem) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_mem: sessionID is empty")
	}

	r.mu.RLock()
	c, ok := r.carts[sid]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !c.ExpiresAt.IsZero() && r.now().After(c.ExpiresAt) {
		r.mu.Lock()
		if cur, ok := r.carts[sid]; ok && cur == c {
			delete(r.carts, sid)
		}
		r.mu.Unlock()
		return nil, nil
	}
	return cloneCart(c), nil
}

func (r *CartRepositoryMem) Upsert(_ context.Context, c *cartdom.Cart) error {
	if c == nil {
		return errors.New("cart_repository_mem: cart is nil")
	}
	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_mem: Upsert requires cart.ID (= session id)")
	}

	r.mu.Lock()
	r.carts[sid] = cloneCart(c)
	r.mu.Unlock()
	return nil
}

func (r *CartRepositoryMem) DeleteBySessionID(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, strings.TrimSpace(sessionID))
	r.mu.Unlock()
	return nil
}

// Sweep removes every expired cart and returns how many were dropped.
func (r *CartRepositoryMem) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for sid, c := range r.carts {
		if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
			delete(r.carts, sid)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *CartRepositoryMem) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

func cloneCart(c *cartdom.Cart) *cartdom.Cart {
	cp := *c
	cp.Items = append([]cartdom.CartItem(nil), c.Items...)
	if cp.Items == nil {
		cp.Items = []cartdom.CartItem{}
	}
	return &cp
}
