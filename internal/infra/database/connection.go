package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type DB struct {
	Client *sql.DB
	Driver string
}

// NewConnection opens and pings the database.
// driver is one of "pgx", "postgres" (lib/pq) or "sqlite" (modernc).
func NewConnection(ctx context.Context, driver, dsn string, maxOpenConns int) (*DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	// Connection pool tuning
	if driver == "sqlite" {
		// single writer; transactions serialize on the one connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		if maxOpenConns <= 0 {
			maxOpenConns = 25
		}
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Printf("[DB] Connected driver=%s", driver)
	return &DB{Client: db, Driver: driver}, nil
}

// Graceful shutdown
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
