package migration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"onepager-generator/internal/logger"
)

// Migration represents a database migration
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order; each statement is idempotent.
var Migrations = []Migration{
	{
		Name: "create_onepager_renders",
		SQL: `
		CREATE TABLE IF NOT EXISTS onepager_renders (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			template TEXT NOT NULL,
			status TEXT NOT NULL,
			locale TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "index_onepager_renders_user",
		SQL:  `CREATE INDEX IF NOT EXISTS onepager_renders_user_id_idx ON onepager_renders (user_id, created_at DESC);`,
	},
	{
		Name: "create_hosted_onepagers",
		SQL: `
		CREATE TABLE IF NOT EXISTS hosted_onepagers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			template TEXT NOT NULL DEFAULT 'classic',
			data JSONB NOT NULL DEFAULT '{}'::jsonb,
			hints JSONB NOT NULL DEFAULT '{}'::jsonb,
			download_enabled BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	log = logger.OrNop(log)
	log.Info("Starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error("Migration failed", zap.String("name", m.Name), zap.Error(err))
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		log.Info("Migration completed", zap.String("name", m.Name))
	}

	log.Info("All migrations completed successfully")
	return nil
}
