// backend/internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// CartHandler serves the session cart.
//   - GET    /cart
//   - GET    /cart/count
//   - POST   /cart/add
//   - PUT    /cart/update
//   - DELETE /cart/remove/{id}
//   - DELETE /cart/clear
//   - POST   /cart/validate
//
// The session id comes from middleware.Session.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	h := &CartHandler{uc: uc}

	r := chi.NewRouter()
	r.Get("/", h.get)
	r.Get("/count", h.count)
	r.Post("/add", h.add)
	r.Put("/update", h.update)
	r.Delete("/remove/{id}", h.remove)
	r.Delete("/clear", h.clear)
	r.Post("/validate", h.validate)
	return r
}

type cartLineRequest struct {
	ProductID flexInt `json:"product_id"`
	Quantity  flexInt `json:"quantity"`
}

type cartMutationResponse struct {
	Message   string        `json:"message"`
	Cart      []cartItemDTO `json:"cart"`
	ItemCount int           `json:"item_count"`
}

func mutation(msg string, c *cartdom.Cart) cartMutationResponse {
	return cartMutationResponse{Message: msg, Cart: toCartItems(c), ItemCount: c.Count()}
}

// ============================================================
// Queries
// ============================================================

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	view, err := h.uc.Read(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cart":       toCartLines(view),
		"total":      money(view.Total),
		"item_count": view.ItemCount,
	})
}

func (h *CartHandler) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.uc.Count(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// ============================================================
// Commands
// ============================================================

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.uc.AddItem(r.Context(), middleware.SessionID(r), req.ProductID.or(0), int(req.Quantity.or(1)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutation("Item added to cart", c))
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !req.ProductID.Set || !req.Quantity.Set {
		writeError(w, apperr.InvalidArgument("Product ID and quantity required"))
		return
	}

	c, err := h.uc.UpdateItem(r.Context(), middleware.SessionID(r), req.ProductID.Value, int(req.Quantity.Value))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutation("Cart updated", c))
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Item not in cart"))
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), middleware.SessionID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutation("Item removed from cart", c))
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Clear(r.Context(), middleware.SessionID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartMutationResponse{Message: "Cart cleared", Cart: []cartItemDTO{}, ItemCount: 0})
}

func (h *CartHandler) validate(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Validate(r.Context(), middleware.SessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	issues := res.Issues
	if issues == nil {
		issues = []cartdom.Issue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":  res.Valid,
		"issues": issues,
		"cart":   toCartItems(res.Cart),
	})
}
