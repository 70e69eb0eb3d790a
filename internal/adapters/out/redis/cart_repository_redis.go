// backend/internal/adapters/out/redis/cart_repository_redis.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
)

const keyPrefix = "gurlhub:cart:"

// CartRepositoryRedis implements cart.Repository on Redis.
//   - key: gurlhub:cart:<sessionId>
//   - value: JSON cart document
//   - EXPIRE follows cart.ExpiresAt
type CartRepositoryRedis struct {
	Client goredis.Cmdable
	now    func() time.Time
}

func NewCartRepositoryRedis(client goredis.Cmdable) *CartRepositoryRedis {
	return &CartRepositoryRedis{Client: client, now: time.Now}
}

// NewClient opens a client and pings it.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func Key(sessionID string) string {
	return keyPrefix + strings.TrimSpace(sessionID)
}

func (r *CartRepositoryRedis) GetBySessionID(ctx context.Context, sessionID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_redis: client is nil")
	}
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("cart_repository_redis: sessionID is empty")
	}

	raw, err := r.Client.Get(ctx, Key(sid)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var c cartdom.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("cart_repository_redis: decode %s: %w", sid, err)
	}
	c.ID = sid
	if c.Items == nil {
		c.Items = []cartdom.CartItem{}
	}
	return &c, nil
}

func (r *CartRepositoryRedis) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_redis: client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_redis: cart is nil")
	}
	sid := strings.TrimSpace(c.ID)
	if sid == "" {
		return errors.New("cart_repository_redis: Upsert requires cart.ID (= session id)")
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, Key(sid), raw, expiryFor(c, r.now())).Err()
}

func (r *CartRepositoryRedis) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_redis: client is nil")
	}
	return r.Client.Del(ctx, Key(sessionID)).Err()
}

// expiryFor is the remaining lifetime of c, falling back to its TTL.
func expiryFor(c *cartdom.Cart, now time.Time) time.Duration {
	if !c.ExpiresAt.IsZero() {
		if d := c.ExpiresAt.Sub(now); d > time.Second {
			return d
		}
		return time.Second
	}
	if c.TTL > 0 {
		return c.TTL
	}
	return cartdom.DefaultCartTTL
}
