// backend/internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// ProductHandler serves the public catalog.
//   - GET /products
//   - GET /products/categories
//   - GET /products/featured
//   - GET /products/search?q=
//   - GET /products/{id}
//   - GET /products/{id}/related
//   - GET /products/{id}/stock?quantity=
type ProductHandler struct {
	uc *usecase.CatalogUsecase
}

func NewProductHandler(uc *usecase.CatalogUsecase) http.Handler {
	h := &ProductHandler{uc: uc}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/categories", h.categories)
	r.Get("/featured", h.featured)
	r.Get("/search", h.search)
	r.Get("/{id}", h.get)
	r.Get("/{id}/related", h.related)
	r.Get("/{id}/stock", h.stock)
	return r
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := usecase.ListProductsQuery{
		Category: strings.TrimSpace(qs.Get("category")),
		Search:   strings.TrimSpace(qs.Get("search")),
		MinPrice: parseDecimalPtr(qs.Get("min_price")),
		MaxPrice: parseDecimalPtr(qs.Get("max_price")),
		SortBy:   strings.TrimSpace(qs.Get("sort_by")),
		Limit:    parseIntDefault(qs.Get("limit"), 0),
	}

	list, err := h.uc.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": toProductDTOs(list),
		"count":    len(list),
	})
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Product not found"))
		return
	}
	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": toProductDTO(p)})
}

func (h *ProductHandler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.uc.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *ProductHandler) featured(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), usecase.DefaultFeaturedLimit)
	list, err := h.uc.Featured(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": toProductDTOs(list)})
}

func (h *ProductHandler) search(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	list, ok, err := h.uc.Search(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{
			"products": []productDTO{},
			"message":  "Search term too short",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": toProductDTOs(list),
		"count":    len(list),
		"query":    term,
	})
}

func (h *ProductHandler) related(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Product not found"))
		return
	}
	list, err := h.uc.Related(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": toProductDTOs(list)})
}

func (h *ProductHandler) stock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, apperr.NotFound("Product not found"))
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("quantity")))
	if err != nil {
		qty = 1
	}

	res, err := h.uc.CheckStock(r.Context(), id, qty)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available": res.Available,
		"stock":     res.Stock,
		"requested": res.Requested,
	})
}

// parseDecimalPtr returns nil for empty or malformed input.
func parseDecimalPtr(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
