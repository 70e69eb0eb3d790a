// backend/internal/adapters/in/http/middleware/session.go
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionHeader lets non-browser clients carry the cart session explicitly.
	SessionHeader = "X-Session-Id"

	DefaultSessionCookie = "gh_session"
)

// Session assigns every caller a cart session id.
// The id comes from the X-Session-Id header or the session cookie; unknown or
// malformed ids are replaced by a fresh UUID which is echoed back in both.
type Session struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

func (m *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := m.CookieName
		if name == "" {
			name = DefaultSessionCookie
		}

		sid, fromCookie := readSessionID(r, name)
		if sid == "" {
			sid = uuid.NewString()
		}
		if !fromCookie {
			c := &http.Cookie{
				Name:     name,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			if m.TTL > 0 {
				c.MaxAge = int(m.TTL / time.Second)
			}
			http.SetCookie(w, c)
		}
		w.Header().Set(SessionHeader, sid)

		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sid)))
	})
}

func readSessionID(r *http.Request, cookieName string) (sid string, fromCookie bool) {
	if h := strings.TrimSpace(r.Header.Get(SessionHeader)); validSessionID(h) {
		return h, false
	}
	if c, err := r.Cookie(cookieName); err == nil && validSessionID(c.Value) {
		return c.Value, true
	}
	return "", false
}

func validSessionID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// WithSessionID stores sid in ctx.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, ctxKeySession, sid)
}

// SessionID returns the cart session id ("" outside the Session middleware).
func SessionID(r *http.Request) string {
	s, _ := r.Context().Value(ctxKeySession).(string)
	return s
}
