// backend/internal/adapters/in/http/handlers/auth_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// AuthCookie configures the access-token cookie set on login.
type AuthCookie struct {
	Name   string
	Secure bool
}

// AuthHandler serves registration, login and password endpoints.
//   - POST /auth/register
//   - POST /auth/login
//   - POST /auth/logout
//   - GET  /auth/me
//   - GET  /auth/check
//   - POST /auth/forgot-password
//   - POST /auth/change-password
type AuthHandler struct {
	uc     *usecase.AuthUsecase
	cookie AuthCookie
}

func NewAuthHandler(uc *usecase.AuthUsecase, cookie AuthCookie) http.Handler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultTokenCookie
	}
	h := &AuthHandler{uc: uc, cookie: cookie}

	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
	r.Get("/check", h.check)
	r.Post("/forgot-password", h.forgotPassword)
	r.With(middleware.RequireUser).Post("/change-password", h.changePassword)
	return r
}

type sessionResponse struct {
	Message   string  `json:"message"`
	User      userDTO `json:"user"`
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s, err := h.uc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	h.setToken(w, s)
	writeJSON(w, http.StatusCreated, sessionResponse{
		Message:   "Registration successful",
		User:      toUserDTO(s.User),
		Token:     s.Token,
		ExpiresAt: toRFC3339(s.ExpiresAt),
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s, err := h.uc.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		writeError(w, err)
		return
	}
	h.setToken(w, s)
	writeJSON(w, http.StatusOK, sessionResponse{
		Message:   "Login successful",
		User:      toUserDTO(s.User),
		Token:     s.Token,
		ExpiresAt: toRFC3339(s.ExpiresAt),
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	h.clearToken(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	id, _ := middleware.CurrentUserID(r)
	u, err := h.uc.Me(r.Context(), id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			h.clearToken(w)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(u)})
}

func (h *AuthHandler) check(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.CurrentUserID(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	u, err := h.uc.Me(r.Context(), id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": toUserDTO(u)})
}

func (h *AuthHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.uc.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *AuthHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.uc.ChangePassword(r.Context(), userID(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// ============================================================
// cookie helpers
// ============================================================

func (h *AuthHandler) setToken(w http.ResponseWriter, s usecase.Session) {
	if s.Token == "" {
		return
	}
	maxAge := int(time.Until(s.ExpiresAt) / time.Second)
	if maxAge <= 0 {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
