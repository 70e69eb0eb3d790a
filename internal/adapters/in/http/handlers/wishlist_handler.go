// backend/internal/adapters/in/http/handlers/wishlist_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// WishlistHandler serves /users/wishlist. Mount behind middleware.RequireUser.
type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) http.Handler {
	h := &WishlistHandler{uc: uc}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/clear", h.clear)
	r.Delete("/{product_id}", h.remove)
	return r
}

func (h *WishlistHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]wishlistDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toWishlistDTO(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"wishlist": out,
		"count":    len(out),
	})
}

func (h *WishlistHandler) add(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID flexInt `json:"product_id"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	e, err := h.uc.Add(r.Context(), userID(r), req.ProductID.or(0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Added to wishlist",
		"item":    toWishlistDTO(e),
	})
}

func (h *WishlistHandler) remove(w http.ResponseWriter, r *http.Request) {
	pid, ok := pathID(r, "product_id")
	if !ok {
		writeError(w, apperr.NotFound("Item not in wishlist"))
		return
	}
	if err := h.uc.Remove(r.Context(), userID(r), pid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

func (h *WishlistHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Clear(r.Context(), userID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Wishlist cleared"})
}
