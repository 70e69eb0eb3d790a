// backend/internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"time"

	httpin "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/handlers"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/in/http/middleware"
	sqlrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db"
	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	fsrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/firestore"
	gcsrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/gcs"
	"github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/memory"
	redisrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/redis"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	cartdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/cart"
	orderdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/order"
	authinfra "github.com/Lanor-Jephthah1/gurlhub/internal/infra/auth"
	appcfg "github.com/Lanor-Jephthah1/gurlhub/internal/infra/config"
	"github.com/Lanor-Jephthah1/gurlhub/internal/infra/database"
	otelinfra "github.com/Lanor-Jephthah1/gurlhub/internal/infra/otel"
)

const (
	serviceName   = "gurlhub-api"
	sweepInterval = 10 * time.Minute
	bcryptCost    = 12
	// requestTimeout bounds handler contexts; kept below the server WriteTimeout.
	requestTimeout = 8 * time.Second
)

// Container is everything main needs: config, wired usecases, and the
// resources Close releases.
type Container struct {
	Config *appcfg.Config
	Infra  *Infra

	CartUC            *usecase.CartUsecase
	OrderUC           *usecase.OrderUsecase
	CatalogUC         *usecase.CatalogUsecase
	AuthUC            *usecase.AuthUsecase
	UserUC            *usecase.UserUsecase
	ShippingAddressUC *usecase.ShippingAddressUsecase
	WishlistUC        *usecase.WishlistUsecase

	session  *middleware.Session
	identity *middleware.Identity

	db        *database.DB
	cleanupFn []func()
}

// NewContainer loads config from the environment and wires the application.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := appcfg.Load()
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg)
}

// Build wires the application from cfg. On error every resource opened so far is released.
func Build(ctx context.Context, cfg *appcfg.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.build(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) build(ctx context.Context) error {
	cfg := c.Config
	var err error

	// ------------------------------------------------------------
	// 1. Database
	// ------------------------------------------------------------
	c.db, err = database.NewConnection(ctx, cfg.DBDriver, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		return err
	}
	if err = database.Migrate(ctx, c.db.Client, cfg.DBDriver); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	dialect := dbcommon.DialectForDriver(cfg.DBDriver)
	tx := dbcommon.NewTxManager(c.db.Client, cfg.TxTimeout)

	productRepo := sqlrepo.NewProductRepositorySQL(c.db.Client, dialect)
	orderRepo := sqlrepo.NewOrderRepositorySQL(c.db.Client, dialect)
	userRepo := sqlrepo.NewUserRepositorySQL(c.db.Client, dialect)
	addressRepo := sqlrepo.NewShippingAddressRepositorySQL(c.db.Client, dialect)
	wishlistRepo := sqlrepo.NewWishlistRepositorySQL(c.db.Client, dialect)

	if cfg.SeedCatalog {
		n, serr := usecase.SeedCatalogIfEmpty(ctx, productRepo, time.Now().UTC())
		if serr != nil {
			return fmt.Errorf("seed catalog: %w", serr)
		}
		if n > 0 {
			log.Printf("[di] seeded %d catalog products", n)
		}
	}

	// ------------------------------------------------------------
	// 2. External clients
	// ------------------------------------------------------------
	c.Infra, err = NewInfra(ctx, cfg)
	if err != nil {
		return err
	}
	c.cleanupFn = append(c.cleanupFn, func() { _ = c.Infra.Close() })

	shutdownTracing, err := otelinfra.Setup(ctx, serviceName, cfg.OtelEnabled, cfg.OtelEndpoint)
	if err != nil {
		log.Printf("[di] WARN: otel setup failed: %v (tracing disabled)", err)
	} else {
		c.cleanupFn = append(c.cleanupFn, func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(sctx)
		})
	}

	// ------------------------------------------------------------
	// 3. Session cart store
	// ------------------------------------------------------------
	cartRepo, err := c.cartRepository(ctx)
	if err != nil {
		return err
	}

	var images usecase.ImageURLResolver
	if c.Infra.GCS != nil {
		images = gcsrepo.NewProductImageURLResolver(c.Infra.GCS, cfg.ProductImageBucket, cfg.ProductImageSignedURLs, cfg.ProductImageURLTTL)
	}

	// ------------------------------------------------------------
	// 4. Identity
	// ------------------------------------------------------------
	secretKey, err := c.Infra.JWTSecret(ctx)
	if err != nil {
		return err
	}
	jwtm, err := authinfra.NewJWTManager(secretKey)
	if err != nil {
		return err
	}

	// ------------------------------------------------------------
	// 5. Usecases
	// ------------------------------------------------------------
	c.CatalogUC = usecase.NewCatalogUsecase(productRepo).WithImageResolver(images)
	c.CartUC = usecase.NewCartUsecase(cartRepo, productRepo).
		WithTTL(cfg.SessionTTL).
		WithImageResolver(images)
	c.OrderUC = usecase.NewOrderUsecase(tx, orderRepo, productRepo, addressRepo, orderdom.NewRandomNumberGenerator(cfg.OrderNumberPrefix)).
		WithImageResolver(images).
		WithDefaultCurrency(cfg.DefaultCurrency)
	c.AuthUC = usecase.NewAuthUsecase(userRepo, authinfra.NewBcryptHasher(bcryptCost), jwtm, cfg.JWTTTL, cfg.JWTRememberTTL)
	c.UserUC = usecase.NewUserUsecase(tx, userRepo, orderRepo, productRepo, addressRepo, wishlistRepo)
	c.ShippingAddressUC = usecase.NewShippingAddressUsecase(tx, addressRepo)
	c.WishlistUC = usecase.NewWishlistUsecase(wishlistRepo, productRepo).WithImageResolver(images)

	// ------------------------------------------------------------
	// 6. Request middleware
	// ------------------------------------------------------------
	c.session = &middleware.Session{
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.CookieSecure,
		TTL:        cfg.SessionTTL,
	}
	c.identity = &middleware.Identity{
		Tokens:     jwtm,
		CookieName: middleware.DefaultTokenCookie,
	}
	if c.Infra.FirebaseAuth != nil {
		authUC := c.AuthUC
		c.identity.Firebase = authinfra.NewFirebaseVerifier(c.Infra.FirebaseAuth)
		c.identity.ResolveUser = func(ctx context.Context, email string) (int64, error) {
			u, err := authUC.UserForEmail(ctx, email)
			if err != nil {
				return 0, err
			}
			return u.ID, nil
		}
	}

	log.Printf("[di] container ready driver=%s session=%s firebase=%t images=%t",
		cfg.DBDriver, cfg.SessionBackend, c.identity.Firebase != nil, images != nil)
	return nil
}

func (c *Container) cartRepository(ctx context.Context) (cartdom.Repository, error) {
	cfg := c.Config
	switch cfg.SessionBackend {
	case "redis":
		client, err := redisrepo.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		c.cleanupFn = append(c.cleanupFn, func() { _ = client.Close() })
		return redisrepo.NewCartRepositoryRedis(client), nil

	case "firestore":
		if c.Infra.Firestore == nil {
			return nil, fmt.Errorf("di: firestore session backend without a firestore client")
		}
		return fsrepo.NewCartRepositoryFS(c.Infra.Firestore.Client), nil

	default:
		repo := memory.NewCartRepositoryMem()
		sweepCtx, cancel := context.WithCancel(context.Background())
		go repo.RunSweeper(sweepCtx, sweepInterval)
		c.cleanupFn = append(c.cleanupFn, cancel)
		return repo, nil
	}
}

// RouterDeps hands the wired usecases to the HTTP adapter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		CartUC:            c.CartUC,
		OrderUC:           c.OrderUC,
		CatalogUC:         c.CatalogUC,
		AuthUC:            c.AuthUC,
		UserUC:            c.UserUC,
		ShippingAddressUC: c.ShippingAddressUC,
		WishlistUC:        c.WishlistUC,

		Session:  c.session,
		Identity: c.identity,
		AuthCookie: handlers.AuthCookie{
			Name:   middleware.DefaultTokenCookie,
			Secure: c.Config.CookieSecure,
		},

		Tracing:        c.Config.OtelEnabled || c.Config.OtelEndpoint != "",
		RequestTimeout: requestTimeout,
	}
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.cleanupFn) - 1; i >= 0; i-- {
		c.cleanupFn[i]()
	}
	c.cleanupFn = nil
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
}
