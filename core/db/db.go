// Package db wraps the Postgres connection pool used by the catalog
// repository's relational reads and the backlog writer's transactions.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appmarket/matchcore/core/db/queries"
)

// DB wraps a pgxpool.Pool and provides transaction support. It is the
// main entry point for every relational operation in the core.
type DB struct {
	pool *pgxpool.Pool
}

// Config configures the connection pool.
type Config struct {
	DSN string

	// With a pooler (e.g. PgBouncer) in front, this can be relatively
	// low per replica.
	MaxConns int32
	MinConns int32
}

// New creates a DB, validating connectivity with a ping before returning.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close releases the pool's connections.
func (db *DB) Close() {
	db.pool.Close()
}

// Queries returns a Queries instance bound to the pool, for
// non-transactional reads.
func (db *DB) Queries() *queries.Queries {
	return queries.New(db.pool)
}

// WithTx runs fn inside a transaction, rolling back on any error
// (including a panic propagating through fn) and committing otherwise.
// Every exit path releases the underlying connection back to the pool.
func (db *DB) WithTx(ctx context.Context, fn func(q *queries.Queries) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op once committed

	q := queries.New(tx)
	if err := fn(q); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
