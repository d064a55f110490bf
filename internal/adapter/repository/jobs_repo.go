package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"onepager-generator/internal/domain"
)

// JobsRepo records PDF exports in onepager_renders. A nil pool makes Save
// a no-op.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if r == nil || r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("encode job metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO onepager_renders (id, user_id, template, status, locale, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID, j.UserID, j.Template, j.Status, j.Locale, metaB, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save render job %s: %w", j.ID, err)
	}
	return nil
}
