//go:build integration

package db_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	"github.com/Lanor-Jephthah1/gurlhub/internal/infra/database"
)

// Run with: go test -tags integration ./internal/adapters/out/db/...
func TestRepositoriesPostgres(t *testing.T) {
	ctx := context.Background()

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "gurlhub",
				"POSTGRES_PASSWORD": "gurlhub",
				"POSTGRES_DB":       "gurlhub",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://gurlhub:gurlhub@%s:%s/gurlhub?sslmode=disable", host, port.Port())

	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			conn, err := database.NewConnection(ctx, driver, dsn, 4)
			require.NoError(t, err)
			t.Cleanup(func() { _ = conn.Close() })

			require.NoError(t, database.Migrate(ctx, conn.Client, driver))
			_, err = conn.Client.ExecContext(ctx, `TRUNCATE wishlist_items, order_items, orders, addresses, products, users RESTART IDENTITY CASCADE`)
			require.NoError(t, err)

			repoSuite(t, conn.Client, dbcommon.DialectForDriver(driver))
		})
	}
}
