package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"onepager-generator/internal/domain"
)

// HostedRepo reads shareable one-pagers from the hosted_onepagers table.
type HostedRepo struct {
	pool *pgxpool.Pool
}

func NewHostedRepo(pool *pgxpool.Pool) *HostedRepo {
	return &HostedRepo{pool: pool}
}

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into out.
func queryJSON(ctx context.Context, pool *pgxpool.Pool, out interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (r *HostedRepo) Get(ctx context.Context, id string) (*domain.HostedOnePager, error) {
	if r == nil || r.pool == nil {
		return nil, domain.ErrHostedNotFound
	}
	var h domain.HostedOnePager
	err := queryJSON(ctx, r.pool, &h, `SELECT to_jsonb(h) FROM hosted_onepagers h WHERE h.id = $1 LIMIT 1`, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHostedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load hosted one-pager %s: %w", id, err)
	}
	if h.Data == nil {
		h.Data = map[string]interface{}{}
	}
	return &h, nil
}
