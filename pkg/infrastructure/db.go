package infrastructure

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewJobsPool connects to Postgres. An empty dsn falls back to
// JOBS_DATABASE_URL; with neither set there is no database and the error
// says so, which callers treat as "persistence disabled".
func NewJobsPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		dsn = os.Getenv("JOBS_DATABASE_URL")
	}
	if dsn == "" {
		return nil, errors.New("no database url configured")
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
