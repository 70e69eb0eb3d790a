// backend/internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an apperr kind onto the response. Internal errors never leak detail.
func writeError(w http.ResponseWriter, err error) {
	e, ok := apperr.As(err)
	if !ok {
		log.Printf("[http] unclassified error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
		return
	}

	if e.Kind == apperr.KindInternal {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
		return
	}

	body := map[string]any{"error": e.Message}
	if e.Available != nil {
		body["available"] = *e.Available
	}
	writeJSON(w, e.Kind.HTTPStatus(), body)
}

// readJSON decodes a bounded body. An empty body leaves dst untouched.
func readJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.InvalidArgument("Invalid JSON body")
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// pathID parses a positive integer chi URL param.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// userID returns the caller id set by middleware.RequireUser.
func userID(r *http.Request) int64 {
	id, _ := middleware.CurrentUserID(r)
	return id
}

// normalizeStrPtr trims p; whitespace-only becomes nil.
func normalizeStrPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

// ----------------------------
// lenient numeric fields
// ----------------------------

// flexInt accepts 3, "3" and 3.0 the way browser clients send them.
type flexInt struct {
	Value int64
	Set   bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		f.Value, f.Set = n, true
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || fl != float64(int64(fl)) {
		return errors.New("not an integer")
	}
	f.Value, f.Set = int64(fl), true
	return nil
}

func (f flexInt) or(def int64) int64 {
	if !f.Set {
		return def
	}
	return f.Value
}
