// backend/internal/adapters/in/http/handlers/common_handler.go
package handlers

import (
	"net/http"
	"time"
)

// APIVersion is reported by the root banner.
const APIVersion = "1.0.0"

// Banner serves GET / with the API summary.
func Banner(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Girlhub by Debbs API",
		"version": APIVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"auth":     "/api/auth",
			"products": "/api/products",
			"cart":     "/api/cart",
			"orders":   "/api/orders",
			"users":    "/api/users",
		},
	})
}

// Health serves GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound is the JSON 404 for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Endpoint not found"})
}

// MethodNotAllowed is the JSON 405 for known routes.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	methodNotAllowed(w)
}
