package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.TxTimeout)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "gh_session", cfg.SessionCookieName)
	assert.Equal(t, "GH", cfg.OrderNumberPrefix)
	assert.Equal(t, "GHS", cfg.DefaultCurrency)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5000"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("TX_TIMEOUT", "3s")
	t.Setenv("GCP_PROJECT_ID", "gurlhub-dev")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gurlhub.shop")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, 3*time.Second, cfg.TxTimeout)
	assert.Equal(t, "gurlhub-dev", cfg.ProjectID())
	assert.Equal(t, "gurlhub-dev", cfg.FirebaseProject())
	assert.Equal(t, []string{"https://gurlhub.shop"}, cfg.CORSAllowedOrigins)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("TX_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoadFirestoreSessionsNeedProject(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "firestore")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("FIRESTORE_PROJECT_ID", "gurlhub-fs")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gurlhub-fs", cfg.ProjectID())
}
