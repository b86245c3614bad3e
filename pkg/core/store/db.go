// Package store owns the shared Postgres connection pool. The pool is
// optional: when DATABASE_URL is unset the memory layer falls back to its
// in-process ring and this package is never initialized.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool from DATABASE_URL.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			fmt.Printf("[STORE] Database pool initialized\n")
		}
	})
	return err
}

// GetPool returns the pool, or nil when persistence is disabled.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the pool at process shutdown.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
