package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS property_listings (
		id            UUID PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL,
		price         TEXT NOT NULL,
		area          TEXT NOT NULL,
		location      TEXT NOT NULL,
		property_type TEXT NOT NULL CHECK (property_type IN ('residential', 'commercial')),
		contact_name  TEXT NOT NULL,
		contact_phone TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		images        TEXT[] NOT NULL DEFAULT '{}',
		status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		user_id       TEXT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_property_listings_browse
		ON property_listings (status, property_type, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at
		ON contact_messages (created_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
