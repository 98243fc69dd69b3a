package database

import (
	"context"
	"fmt"
	"log/slog"
)

// The schema sticks to types both postgres and sqlite understand. Amounts are
// minor units, timestamps are unix milliseconds.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		username    TEXT NOT NULL,
		email       TEXT NOT NULL UNIQUE,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id            TEXT PRIMARY KEY,
		payer_id      TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		amount_minor  BIGINT NOT NULL,
		currency      TEXT NOT NULL,
		split_policy  TEXT NOT NULL,
		group_id      TEXT,
		category      TEXT NOT NULL DEFAULT '',
		expense_date  TEXT NOT NULL,
		created_at    BIGINT NOT NULL,
		updated_at    BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_payer_id ON expenses(payer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_group_id ON expenses(group_id)`,
	`CREATE TABLE IF NOT EXISTS expense_shares (
		id             TEXT PRIMARY KEY,
		expense_id     TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		participant_id TEXT NOT NULL,
		position       INTEGER NOT NULL,
		amount_minor   BIGINT NOT NULL,
		percentage_bp  BIGINT,
		settled        BOOLEAN NOT NULL DEFAULT FALSE,
		settled_at     BIGINT,
		UNIQUE (expense_id, participant_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expense_shares_participant ON expense_shares(participant_id)`,
	`CREATE TABLE IF NOT EXISTS expense_groups (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_by  TEXT NOT NULL,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id   TEXT NOT NULL REFERENCES expense_groups(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL,
		role       TEXT NOT NULL,
		joined_at  BIGINT NOT NULL,
		PRIMARY KEY (group_id, user_id)
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration %d: %w", i+1, err)
		}
	}
	slog.Info("Database migrated", "dialect", db.Dialect, "statements", len(migrations))
	return nil
}
