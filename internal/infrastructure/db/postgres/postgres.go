// Package postgres implements the relational stores on database/sql with the
// pgx stdlib driver. Uniqueness rules (email, role name, one profile per
// identity) live in the schema as unique indexes; the repositories translate
// the resulting constraint violations into domain errors.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const defaultTimeout = 10 * time.Second

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// Config captures the minimal settings required to establish a connection pool.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a pgx-backed pool, verifies connectivity with a ping, and
// returns the handle. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// isUniqueViolation reports whether err is a unique-constraint breach.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// nullTime maps the zero time to SQL NULL for optional timestamp columns.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
