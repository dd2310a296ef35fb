// Package queries is a hand-maintained, sqlc-shaped query layer: each
// method issues one SQL statement over a DBTX (a pool or a transaction),
// mirroring the generated-code conventions the rest of the examples use
// without requiring the sqlc toolchain to regenerate it.
package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the same Queries
// type backs pooled reads and transactional writes.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries executes the SQL backing C2 (catalog reads) and C9 (backlog
// writes) against whatever DBTX it was constructed with.
type Queries struct {
	db DBTX
}

// New binds a Queries to a pool or an in-flight transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
