package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSettings bounds the connection pool. Zero values fall back to the
// defaults below, so tests can pass an empty struct.
type PoolSettings struct {
	MaxConns int32
	MinConns int32
}

const (
	defaultMaxConns    = 10
	defaultMinConns    = 2
	defaultMaxIdleTime = 5 * time.Minute
)

// DB represents a database connection pool
type DB struct {
	*pgxpool.Pool
}

// NewConnection creates a connection pool sized per settings and verifies
// the database is reachable before returning it. All connections run in UTC.
func NewConnection(ctx context.Context, databaseURL string, settings PoolSettings) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if settings.MaxConns > 0 {
		poolConfig.MaxConns = settings.MaxConns
	}
	poolConfig.MinConns = defaultMinConns
	if settings.MinConns > 0 {
		poolConfig.MinConns = settings.MinConns
	}
	if poolConfig.MinConns > poolConfig.MaxConns {
		poolConfig.MinConns = poolConfig.MaxConns
	}
	poolConfig.MaxConnIdleTime = defaultMaxIdleTime

	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "volleybank"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
