// backend/internal/infra/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting of the storefront.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Database
	DBDriver       string        `env:"DB_DRIVER" envDefault:"sqlite"` // sqlite | pgx | postgres
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:"file:gurlhub.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	TxTimeout      time.Duration `env:"TX_TIMEOUT" envDefault:"10s"`
	SeedCatalog    bool          `env:"SEED_CATALOG" envDefault:"true"`

	// Session cart store
	SessionBackend    string        `env:"SESSION_BACKEND" envDefault:"memory"` // memory | redis | firestore
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"gh_session"`
	CookieSecure      bool          `env:"COOKIE_SECURE" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// GCP
	GCPProjectID       string `env:"GCP_PROJECT_ID"`
	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`
	GCPCreds           string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Identity
	JWTSecret           string        `env:"JWT_SECRET"`
	JWTSecretName       string        `env:"JWT_SECRET_NAME"` // Secret Manager secret id
	JWTTTL              time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTRememberTTL      time.Duration `env:"JWT_REMEMBER_TTL" envDefault:"720h"`
	FirebaseAuthEnabled bool          `env:"FIREBASE_AUTH_ENABLED" envDefault:"false"`
	FirebaseProjectID   string        `env:"FIREBASE_PROJECT_ID"`

	// Product images (GCS)
	ProductImageBucket     string        `env:"PRODUCT_IMAGE_BUCKET"`
	ProductImageSignedURLs bool          `env:"PRODUCT_IMAGE_SIGNED_URLS" envDefault:"false"`
	ProductImageURLTTL     time.Duration `env:"PRODUCT_IMAGE_URL_TTL" envDefault:"15m"`

	// Orders
	OrderNumberPrefix string `env:"ORDER_NUMBER_PREFIX" envDefault:"GH"`
	DefaultCurrency   string `env:"DEFAULT_CURRENCY" envDefault:"GHS"`

	// HTTP
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5000"`

	// Tracing
	OtelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load parses the environment into Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectID returns the Firestore project, falling back to GCP_PROJECT_ID.
func (c *Config) ProjectID() string {
	if p := strings.TrimSpace(c.FirestoreProjectID); p != "" {
		return p
	}
	return strings.TrimSpace(c.GCPProjectID)
}

// FirebaseProject returns the Firebase project, falling back to ProjectID.
func (c *Config) FirebaseProject() string {
	if p := strings.TrimSpace(c.FirebaseProjectID); p != "" {
		return p
	}
	return c.ProjectID()
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "pgx", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case "memory", "redis":
	case "firestore":
		if c.ProjectID() == "" {
			return errors.New("config: SESSION_BACKEND=firestore requires FIRESTORE_PROJECT_ID or GCP_PROJECT_ID")
		}
	default:
		return fmt.Errorf("config: unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.TxTimeout <= 0 {
		return errors.New("config: TX_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if c.JWTSecretName != "" && c.ProjectID() == "" {
		return errors.New("config: JWT_SECRET_NAME requires GCP_PROJECT_ID")
	}
	if c.FirebaseAuthEnabled && c.FirebaseProject() == "" {
		return errors.New("config: FIREBASE_AUTH_ENABLED requires FIREBASE_PROJECT_ID or GCP_PROJECT_ID")
	}
	return nil
}
