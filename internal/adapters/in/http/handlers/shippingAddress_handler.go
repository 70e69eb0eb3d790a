// backend/internal/adapters/in/http/handlers/shippingAddress_handler.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	sadom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/shippingAddress"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// ShippingAddressHandler serves /users/addresses. Mount behind middleware.RequireUser.
//   - GET    /users/addresses
//   - POST   /users/addresses
//   - PUT    /users/addresses/{id}
//   - PATCH  /users/addresses/{id}
//   - DELETE /users/addresses/{id}
type ShippingAddressHandler struct {
	uc *usecase.ShippingAddressUsecase
}

func NewShippingAddressHandler(uc *usecase.ShippingAddressUsecase) http.Handler {
	h := &ShippingAddressHandler{uc: uc}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

type addressRequest struct {
	Label      *string `json:"label"`
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Region     *string `json:"region"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	IsDefault  *bool   `json:"is_default"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (req addressRequest) input() usecase.NewShippingAddressInput {
	return usecase.NewShippingAddressInput{
		Label:      deref(req.Label),
		Name:       deref(req.Name),
		Phone:      deref(req.Phone),
		Street:     deref(req.Street),
		City:       deref(req.City),
		Region:     deref(req.Region),
		PostalCode: deref(req.PostalCode),
		Country:    deref(req.Country),
		IsDefault:  req.IsDefault != nil && *req.IsDefault,
	}
}

func (req addressRequest) patch() sadom.Patch {
	return sadom.Patch{
		Label:      req.Label,
		Name:       req.Name,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		Region:     req.Region,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
}

func (h *ShippingAddressHandler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]addressDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAddressDTO(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"addresses": out})
}

func (h *ShippingAddressHandler) create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.uc.Create(r.Context(), userID(r), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Address added successfully",
		"address": toAddressDTO(a),
	})
}

func (h *ShippingAddressHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Address not found"))
		return
	}
	var req addressRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.uc.Update(r.Context(), userID(r), id, req.patch())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Address updated successfully",
		"address": toAddressDTO(a),
	})
}

func (h *ShippingAddressHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Address not found"))
		return
	}
	if err := h.uc.Delete(r.Context(), userID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Address deleted successfully"})
}
