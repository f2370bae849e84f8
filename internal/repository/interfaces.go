package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it too, so repository tests run without a database.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// AttemptRepositoryInterface defines operations for liveness attempt audit records
type AttemptRepositoryInterface interface {
	Create(ctx context.Context, attempt *domain.Attempt) error
	ListRecent(ctx context.Context, limit int) ([]domain.Attempt, error)
}
