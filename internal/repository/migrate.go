package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS alumni (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		year_graduated INTEGER NOT NULL,
		current_college TEXT NOT NULL,
		college_major TEXT NOT NULL,
		second_major TEXT,
		profession TEXT,
		linkedin_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS alumni_email_lower_idx ON alumni (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS pending_submissions (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		year_graduated INTEGER NOT NULL,
		current_college TEXT NOT NULL,
		college_major TEXT NOT NULL,
		second_major TEXT,
		profession TEXT,
		linkedin_url TEXT,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS pending_submissions_email_lower_idx ON pending_submissions (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the schema when absent. Every statement is idempotent,
// so running it on each startup is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
