// backend/internal/adapters/in/http/router.go
package httpin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/handlers"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
)

// RouterDeps collects the usecases and request middleware injected from the DI container.
type RouterDeps struct {
	CartUC            *usecase.CartUsecase
	OrderUC           *usecase.OrderUsecase
	CatalogUC         *usecase.CatalogUsecase
	AuthUC            *usecase.AuthUsecase
	UserUC            *usecase.UserUsecase
	ShippingAddressUC *usecase.ShippingAddressUsecase
	WishlistUC        *usecase.WishlistUsecase

	Session  *middleware.Session
	Identity *middleware.Identity

	AuthCookie handlers.AuthCookie

	// Tracing enables the OpenTelemetry server span middleware.
	Tracing bool

	// RequestTimeout bounds each request's context (0 disables).
	RequestTimeout time.Duration
}

// NewRouter mounts every storefront endpoint under /api. Routes whose usecase
// is nil are left out.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Use(middleware.Recover)
	r.Use(middleware.RequestLog)
	if deps.Tracing {
		r.Use(middleware.Tracing)
	}
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}

	session := deps.Session
	if session == nil {
		session = &middleware.Session{}
	}
	identity := deps.Identity
	if identity == nil {
		identity = &middleware.Identity{}
	}

	r.Get("/", handlers.Banner)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(session.Handler)
		r.Use(identity.Handler)

		r.Get("/health", handlers.Health)

		if deps.CatalogUC != nil {
			r.Mount("/products", handlers.NewProductHandler(deps.CatalogUC))
		}
		if deps.CartUC != nil {
			r.Mount("/cart", handlers.NewCartHandler(deps.CartUC))
		}
		if deps.OrderUC != nil {
			r.Mount("/orders", handlers.NewOrderHandler(deps.OrderUC, deps.CartUC))
		}
		if deps.AuthUC != nil {
			r.Mount("/auth", handlers.NewAuthHandler(deps.AuthUC, deps.AuthCookie))
		}

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			if deps.UserUC != nil {
				r.Mount("/profile", handlers.NewUserHandler(deps.UserUC))
			}
			if deps.ShippingAddressUC != nil {
				r.Mount("/addresses", handlers.NewShippingAddressHandler(deps.ShippingAddressUC))
			}
			if deps.WishlistUC != nil {
				r.Mount("/wishlist", handlers.NewWishlistHandler(deps.WishlistUC))
			}
		})
	})

	return r
}
