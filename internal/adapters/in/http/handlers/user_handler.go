// backend/internal/adapters/in/http/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// UserHandler serves /users/profile. Mount behind middleware.RequireUser.
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) http.Handler {
	h := &UserHandler{uc: uc}

	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Patch("/", h.update)
	r.Delete("/", h.delete)
	return r
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Birthday *string `json:"birthday"`
}

func (req updateProfileRequest) patch() (userdom.Patch, error) {
	p := userdom.Patch{Name: req.Name, Phone: req.Phone}
	if b := normalizeStrPtr(req.Birthday); b != nil {
		t, err := userdom.ParseBirthday(*b)
		if err != nil {
			return userdom.Patch{}, apperr.Wrap(apperr.KindInvalidArgument, "Invalid birthday format", err)
		}
		p.Birthday = t
	}
	return p, nil
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.uc.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(u)})
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := req.patch()
	if err != nil {
		writeError(w, err)
		return
	}

	u, err := h.uc.UpdateProfile(r.Context(), userID(r), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    toUserDTO(u),
	})
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteAccount(r.Context(), userID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}
