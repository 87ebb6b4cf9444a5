// Package database opens the shared PostgreSQL connection pool.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver
	"github.com/rs/zerolog/log"
)

// Options configures the pool.
type Options struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens the pool and verifies it with a ping.
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	log.Info().Str("driver", opts.Driver).Msg("Connecting to database...")

	db, err := sqlx.Open(opts.Driver, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Int("max_open_conns", opts.MaxOpenConns).Msg("Database connection successful.")
	return db, nil
}
