// backend/internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	authinfra "github.com/Lanor-Jephthah1/gurlhub/internal/infra/auth"
)

// DefaultTokenCookie carries the access token for browser clients.
const DefaultTokenCookie = "gh_token"

type ctxKey struct{ name string }

var (
	ctxKeyUserID  = ctxKey{name: "userId"}
	ctxKeyEmail   = ctxKey{name: "email"}
	ctxKeySession = ctxKey{name: "sessionId"}
)

// TokenParser verifies first-party access tokens.
type TokenParser interface {
	Parse(raw string) (*authinfra.Claims, error)
}

// EmailVerifier verifies third-party ID tokens and returns the verified email.
type EmailVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// UserResolver maps a verified email onto a local user id.
type UserResolver func(ctx context.Context, email string) (int64, error)

// Identity resolves the caller per request. It never rejects a request;
// anonymous callers simply carry no user id. Use RequireUser to enforce auth.
//   - first-party JWT from "Authorization: Bearer" or the token cookie
//   - Firebase ID token fallback when Firebase and ResolveUser are set
type Identity struct {
	Tokens      TokenParser
	Firebase    EmailVerifier
	ResolveUser UserResolver
	CookieName  string
}

func (m *Identity) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			raw = m.cookieToken(r)
		}
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		if id, email, ok := m.resolve(ctx, raw); ok {
			ctx = WithUser(ctx, id, email)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Identity) resolve(ctx context.Context, raw string) (int64, string, bool) {
	if m.Tokens != nil {
		if claims, err := m.Tokens.Parse(raw); err == nil {
			id, _ := claims.UserID()
			return id, claims.Email, true
		}
	}

	if m.Firebase == nil || m.ResolveUser == nil {
		return 0, "", false
	}
	email, err := m.Firebase.VerifyEmail(ctx, raw)
	if err != nil {
		return 0, "", false
	}
	id, err := m.ResolveUser(ctx, email)
	if err != nil || id <= 0 {
		log.Printf("[auth] firebase user not registered locally (email=%s)", email)
		return 0, "", false
	}
	return id, email, true
}

func (m *Identity) cookieToken(r *http.Request) string {
	name := m.CookieName
	if name == "" {
		name = DefaultTokenCookie
	}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireUser rejects anonymous callers with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUserID(r); !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser stores the resolved identity in ctx.
func WithUser(ctx context.Context, userID int64, email string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	if email = strings.TrimSpace(email); email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
	}
	return ctx
}

// CurrentUserID returns the authenticated user id.
func CurrentUserID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(ctxKeyUserID).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// CurrentUserEmail returns the email carried by the token, if any.
func CurrentUserEmail(r *http.Request) string {
	s, _ := r.Context().Value(ctxKeyEmail).(string)
	return s
}
