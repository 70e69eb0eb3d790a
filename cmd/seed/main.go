// backend/cmd/seed/main.go
package main

import (
	"context"
	"log"
	"time"

	sqlrepo "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db"
	dbcommon "github.com/Lanor-Jephthah1/gurlhub/internal/adapters/out/db/common"
	usecase "github.com/Lanor-Jephthah1/gurlhub/internal/application/usecase"
	appcfg "github.com/Lanor-Jephthah1/gurlhub/internal/infra/config"
	"github.com/Lanor-Jephthah1/gurlhub/internal/infra/database"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("[seed] config: %v", err)
	}

	conn, err := database.NewConnection(ctx, cfg.DBDriver, cfg.DatabaseURL, 1)
	if err != nil {
		log.Fatalf("[seed] %v", err)
	}
	defer conn.Close()

	if err := database.Migrate(ctx, conn.Client, cfg.DBDriver); err != nil {
		log.Fatalf("[seed] migrate: %v", err)
	}

	repo := sqlrepo.NewProductRepositorySQL(conn.Client, dbcommon.DialectForDriver(cfg.DBDriver))
	n, err := usecase.SeedCatalogIfEmpty(ctx, repo, time.Now().UTC())
	if err != nil {
		log.Fatalf("[seed] %v", err)
	}
	if n == 0 {
		log.Println("[seed] catalog already populated; nothing to do")
		return
	}
	log.Printf("[seed] catalog seeded (%d products)", n)
}
