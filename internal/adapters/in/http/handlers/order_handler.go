// backend/internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// OrderHandler serves checkout and the order lifecycle.
//   - POST  /orders
//   - GET   /orders
//   - GET   /orders/stats
//   - GET   /orders/track/{number}   (public)
//   - GET   /orders/{id}
//   - POST  /orders/{id}/cancel
//   - PATCH /orders/{id}/status
type OrderHandler struct {
	uc    *usecase.OrderUsecase
	carts *usecase.CartUsecase
}

// NewOrderHandler wires the order routes. carts may be nil; when set, the
// session cart is cleared after a successful checkout.
func NewOrderHandler(uc *usecase.OrderUsecase, carts *usecase.CartUsecase) http.Handler {
	h := &OrderHandler{uc: uc, carts: carts}

	r := chi.NewRouter()
	r.Get("/track/{number}", h.track)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/stats", h.stats)
		r.Get("/{id}", h.get)
		r.Post("/{id}/cancel", h.cancel)
		r.Patch("/{id}/status", h.updateStatus)
	})
	return r
}

type orderLineRequest struct {
	ProductID flexInt `json:"product_id"`
	ID        flexInt `json:"id"`
	Quantity  flexInt `json:"quantity"`
}

type createOrderRequest struct {
	Items             []orderLineRequest `json:"items"`
	ShippingAddressID flexInt            `json:"shipping_address_id"`
	PaymentMethod     string             `json:"payment_method"`
	Notes             string             `json:"notes"`
	Currency          string             `json:"currency"`
}

func (req createOrderRequest) input(userID int64) usecase.CreateOrderInput {
	in := usecase.CreateOrderInput{
		UserID:        userID,
		Items:         make([]usecase.OrderLine, 0, len(req.Items)),
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Currency:      req.Currency,
	}
	for _, it := range req.Items {
		pid := it.ProductID.or(it.ID.or(0))
		in.Items = append(in.Items, usecase.OrderLine{ProductID: pid, Quantity: int(it.Quantity.or(1))})
	}
	if req.ShippingAddressID.Set && req.ShippingAddressID.Value > 0 {
		id := req.ShippingAddressID.Value
		in.ShippingAddressID = &id
	}
	return in
}

// ============================================================
// Commands
// ============================================================

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.uc.CreateOrder(r.Context(), req.input(userID(r)))
	if err != nil {
		writeError(w, err)
		return
	}

	if h.carts != nil {
		if sid := middleware.SessionID(r); sid != "" {
			if err := h.carts.Clear(r.Context(), sid); err != nil {
				log.Printf("[order_handler] clear cart after order %s failed: %v", o.OrderNumber, err)
			}
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   toOrderDTO(o),
	})
}

func (h *OrderHandler) cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Order not found"))
		return
	}
	o, err := h.uc.CancelOrder(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order cancelled successfully",
		"order":   toOrderDTO(o),
	})
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Order not found"))
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.uc.UpdateStatus(r.Context(), userID(r), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order cancelled successfully",
		"order":   toOrderDTO(o),
	})
}

// ============================================================
// Queries
// ============================================================

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.ListOrders(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": toOrderDTOs(list),
		"count":  len(list),
	})
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Order not found"))
		return
	}
	o, err := h.uc.GetOrder(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": toOrderDTO(o)})
}

func (h *OrderHandler) track(w http.ResponseWriter, r *http.Request) {
	t, err := h.uc.TrackByNumber(r.Context(), strings.TrimSpace(chi.URLParam(r, "number")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order_number":    t.OrderNumber,
		"status":          string(t.Status),
		"created_at":      toRFC3339(t.CreatedAt),
		"updated_at":      toRFC3339(t.UpdatedAt),
		"tracking_number": optString(t.TrackingNumber),
	})
}

func (h *OrderHandler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.uc.Stats(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	breakdown := map[string]int{}
	for st, n := range s.StatusBreakdown {
		breakdown[string(st)] = n
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":     s.TotalOrders,
		"total_spent":      jsonNumber(s.TotalSpent),
		"status_breakdown": breakdown,
	})
}
