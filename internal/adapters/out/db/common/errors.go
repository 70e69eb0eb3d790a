package common

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports a unique/primary key constraint failure on any supported driver.
func IsUniqueViolation(err error) bool {
	return hasConstraintCode(err, pgUniqueViolation, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "unique constraint")
}

// IsCheckViolation reports a CHECK constraint failure on any supported driver.
func IsCheckViolation(err error) bool {
	return hasConstraintCode(err, pgCheckViolation, sqlite3.SQLITE_CONSTRAINT_CHECK, "check constraint")
}

// IsForeignKeyViolation reports a FOREIGN KEY constraint failure on any supported driver.
func IsForeignKeyViolation(err error) bool {
	return hasConstraintCode(err, pgForeignKeyViolation, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "foreign key constraint")
}

func hasConstraintCode(err error, pgCode string, liteCode int, fallback string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCode
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgCode
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code() == liteCode {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), fallback)
}
