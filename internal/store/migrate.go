package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ddl holds the table definitions, applied in order. Statements are
// idempotent so dev auto-migration can run on every boot.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id          TEXT PRIMARY KEY,
		family      TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		active      BOOLEAN NOT NULL DEFAULT TRUE,
		fields      JSONB NOT NULL DEFAULT '[]',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (family, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_templates_family_active ON templates (family, active)`,

	`CREATE TABLE IF NOT EXISTS instances (
		id           TEXT PRIMARY KEY,
		family       TEXT NOT NULL,
		template_id  TEXT NOT NULL REFERENCES templates (id),
		name         TEXT NOT NULL,
		vals         JSONB NOT NULL DEFAULT '[]',
		site_id      TEXT REFERENCES instances (id) ON DELETE SET NULL,
		status       TEXT NOT NULL DEFAULT '',
		sla_deadline TIMESTAMPTZ,
		sla_breached BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_instances_family_template ON instances (family, template_id)`,
	`CREATE INDEX IF NOT EXISTS idx_instances_site ON instances (site_id)`,
	`CREATE INDEX IF NOT EXISTS idx_instances_sla ON instances (family, status, sla_breached) WHERE sla_deadline IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active',
		start_date  DATE,
		end_date    DATE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS job_positions (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id              TEXT PRIMARY KEY,
		first_name      TEXT NOT NULL,
		last_name       TEXT NOT NULL,
		email           TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		job_position_id TEXT REFERENCES job_positions (id) ON DELETE SET NULL,
		team_id         TEXT REFERENCES teams (id) ON DELETE SET NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		roles         TEXT[] NOT NULL DEFAULT '{}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		title       TEXT NOT NULL,
		body        TEXT NOT NULL DEFAULT '',
		resource_id TEXT,
		read        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications (created_at)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id            TEXT PRIMARY KEY,
		action        TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   TEXT NOT NULL,
		actor         TEXT NOT NULL,
		details       JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs (resource_type, resource_id)`,
}

// Migrate applies the table definitions. Development convenience only;
// production schemas are managed externally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
