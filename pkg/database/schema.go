package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements create the tables on first start. There is no migration
// history; every statement must stay idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS filter_bag_submissions (
		id UUID PRIMARY KEY,
		token VARCHAR(100) NOT NULL,
		recipient_email VARCHAR(200) NOT NULL,
		po_number VARCHAR(100),
		admin_quantity INTEGER,
		admin_size VARCHAR(200),
		bag_type VARCHAR(50),
		collar_od VARCHAR(100),
		collar_id VARCHAR(100),
		tubesheet_data TEXT,
		tubesheet_dia VARCHAR(100),
		client_name VARCHAR(200),
		client_email VARCHAR(200),
		quantity INTEGER,
		remarks TEXT,
		submitted BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		submitted_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_filter_bag_submissions_token ON filter_bag_submissions (token)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_filter_bag_submissions_pending_token ON filter_bag_submissions (token) WHERE bag_type IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_filter_bag_submissions_created_at ON filter_bag_submissions (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS bag_sizes (
		id UUID PRIMARY KEY,
		size_name VARCHAR(100) NOT NULL,
		bag_type VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bag_sizes_type_created_at ON bag_sizes (bag_type, created_at DESC)`,
}

// EnsureSchema creates missing tables and indexes in a single transaction.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
